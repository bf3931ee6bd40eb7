package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP()
	assert.Len(t, otp, 6)
	for _, ch := range otp {
		assert.True(t, ch >= '0' && ch <= '9')
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Web Application Pentesting": "web-application-pentesting",
		"  Host Header Attacks  ":    "host-header-attacks",
		"SQL Injection 101!":         "sql-injection-101",
		"C++ Basics":                 "c-basics",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in))
	}
}

func TestPaginate(t *testing.T) {
	offset, limit := Paginate(3, 20)
	assert.Equal(t, 40, offset)
	assert.Equal(t, 20, limit)

	offset, limit = Paginate(0, 0)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)
}
