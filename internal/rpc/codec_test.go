package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodec_OmitsAbsentProfileFields(t *testing.T) {
	name := "Ann"
	b, err := jsonCodec{}.Marshal(&UpdateProfileRequest{FirstName: &name})
	require.NoError(t, err)
	assert.JSONEq(t, `{"firstName":"Ann"}`, string(b))

	var got UpdateProfileRequest
	require.NoError(t, jsonCodec{}.Unmarshal([]byte(`{"lastName":"Lee"}`), &got))
	assert.Nil(t, got.FirstName)
	require.NotNil(t, got.LastName)
	assert.Equal(t, "Lee", *got.LastName)
}
