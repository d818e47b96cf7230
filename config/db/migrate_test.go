package db

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaRoomNumbersUniqueIgnoringCase(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`(?i)CREATE UNIQUE INDEX IF NOT EXISTS \w+ ON rooms \(lower\(number\)\)`), schema)
	assert.NotRegexp(t, regexp.MustCompile(`(?i)number\s+TEXT NOT NULL UNIQUE`), schema)
	assert.Contains(t, schema, "DROP CONSTRAINT IF EXISTS rooms_number_key")
}
