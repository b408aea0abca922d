package tests

import (
	"testing"

	"github.com/ssoogun/outlier.property/utils"
	"github.com/stretchr/testify/assert"
)

func TestFormatPounds(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "£0"},
		{950, "£950"},
		{1234, "£1,234"},
		{450000, "£450,000"},
		{1234567.89, "£1,234,567"},
		{-98765, "£-98,765"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, utils.FormatPounds(c.in))
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "25.0%", utils.FormatPercent(25))
	assert.Equal(t, "25.0%", utils.FormatPercent(25.04))
	assert.Equal(t, "25.1%", utils.FormatPercent(25.06))
	assert.Equal(t, "-3.2%", utils.FormatPercent(-3.25))
	assert.Equal(t, "0.0%", utils.FormatPercent(0))
}

func TestPostcodeQuery(t *testing.T) {
	assert.Equal(t, "SW1A+1AA", utils.PostcodeQuery("SW1A 1AA"))
	assert.Equal(t, "E1+6AN", utils.PostcodeQuery("  E1 6AN  "))
	assert.Equal(t, "N19GU", utils.PostcodeQuery("N19GU"))
}

func TestLookupURL(t *testing.T) {
	assert.Equal(t,
		"https://www.google.com/search?q=schools+near+SW1A+1AA",
		utils.LookupURL(utils.LookupSchoolsURL, "SW1A 1AA"))
	assert.Equal(t,
		"https://www.google.com/search?q=HMO+licensing+E1+6AN",
		utils.LookupURL(utils.LookupHMOLicensingURL, "E1 6AN"))
}
