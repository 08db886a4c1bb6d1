package href

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStringify(t *testing.T) {
	assert.Equal(t, "", stringify(nil))
	assert.Equal(t, "foo", stringify("foo"))
	assert.Equal(t, "bar", stringify([]byte("bar")))
	assert.Equal(t, "true", stringify(true))
	assert.Equal(t, "0", stringify(0))
	assert.Equal(t, "-42", stringify(int8(-42)))
	assert.Equal(t, "65535", stringify(uint16(65535)))
	assert.Equal(t, "18446744073709551615", stringify(uint64(math.MaxUint64)))
	assert.Equal(t, "1", stringify(1.0))
	assert.Equal(t, "1.5", stringify(float32(1.5)))
	assert.Equal(t, "0.1", stringify(0.1))
	assert.Equal(t, "0", stringify(math.Copysign(0, -1)))
	assert.Equal(t, "NaN", stringify(math.NaN()))
	assert.Equal(t, "Infinity", stringify(math.Inf(1)))
	assert.Equal(t, "-Infinity", stringify(math.Inf(-1)))
	assert.Equal(t, "1e+21", stringify(1e21))
	assert.Equal(t, "1e-7", stringify(1e-7))
	assert.Equal(t, "123456789012", stringify(123456789012.0))
	assert.Equal(t, "1s", stringify(time.Second))
	assert.Equal(t, "boom", stringify(errors.New("boom")))
	assert.Equal(t, "[1 2]", stringify([]int{1, 2}))
}

func TestIsNumber(t *testing.T) {
	assert.True(t, isNumber(0))
	assert.True(t, isNumber(uint8(1)))
	assert.True(t, isNumber(math.NaN()))
	assert.False(t, isNumber("0"))
	assert.False(t, isNumber(nil))
	assert.False(t, isNumber(true))
}
