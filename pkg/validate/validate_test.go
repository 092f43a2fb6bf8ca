package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientName(t *testing.T) {
	assert.Nil(t, ClientName("Mary O'Brien-Smith"))
	assert.Nil(t, ClientName("Jo"))

	err := ClientName("J")
	require.NotNil(t, err)
	assert.Equal(t, "clientName", err.Field)

	err = ClientName(strings.Repeat("a", 51))
	require.NotNil(t, err)
	assert.Equal(t, "clientName", err.Field)

	err = ClientName("R2-D2!")
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "letters")
}

func TestEmail(t *testing.T) {
	assert.Nil(t, Email("dev@example.com"))

	for _, bad := range []string{"", "a@b", "no-at-sign.com", "spaces in@example.com"} {
		err := Email(bad)
		require.NotNil(t, err, "expected rejection for %q", bad)
		assert.Equal(t, "clientEmail", err.Field)
	}
}

func TestPhone(t *testing.T) {
	assert.Nil(t, Phone(""))
	assert.Nil(t, Phone("+1 (555) 867-5309"))
	assert.Nil(t, Phone("5558675309"))

	err := Phone("12345")
	require.NotNil(t, err)
	assert.Equal(t, "clientPhone", err.Field)

	// leading zero is rejected by the international pattern
	assert.NotNil(t, Phone("0555867530"))
}

func TestCompany(t *testing.T) {
	assert.Nil(t, Company(""))
	assert.Nil(t, Company("Acme Ltd"))
	assert.NotNil(t, Company("A"))
	assert.NotNil(t, Company(strings.Repeat("x", 101)))
}

func TestDescription(t *testing.T) {
	assert.NotNil(t, Description("too short"))
	assert.Nil(t, Description(strings.Repeat("help needed ", 10)))
	assert.NotNil(t, Description(strings.Repeat("x", 2001)))
}

func TestZipCode(t *testing.T) {
	assert.Nil(t, ZipCode("94107"))
	assert.NotNil(t, ZipCode("9410"))
	assert.NotNil(t, ZipCode("94107-1234"))
	assert.NotNil(t, ZipCode("abcde"))
}

func TestCheck_CollectsEveryViolation(t *testing.T) {
	errs := Check(BookingFields{
		ClientName:  "!",
		ClientEmail: "nope",
		ClientPhone: "123",
		CompanyName: "A",
		Description: "short",
	})
	require.Len(t, errs, 5)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t,
		[]string{"clientName", "clientEmail", "clientPhone", "companyName", "description"},
		fields,
	)
}

func TestCheck_Idempotent(t *testing.T) {
	payload := BookingFields{ClientName: "!", ClientEmail: "nope", Description: "short"}

	first := Check(payload)
	second := Check(payload)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Field, second[i].Field)
		assert.Equal(t, first[i].Message, second[i].Message)
	}
}
