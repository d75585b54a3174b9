package ethernet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	require.Equal(t, "unknown ethernet error", Kind(0).Error())
	require.Equal(t, "unknown ethernet error", Kind(255).Error())

	for k := ErrNoRecognizedEtherType; k <= ErrNotVLANDoubleTagged; k++ {
		require.NotEqual(t, "unknown ethernet error", k.Error())
		require.NotEmpty(t, k.Error())
	}
}

func TestErrorsIs(t *testing.T) {
	for _, err := range []error{
		CreationError{Kind: ErrFrameTooShort, Size: 4},
		VLANCreationError{Kind: ErrFrameTooShort, Size: 4},
		MatchError{Kind: ErrFrameTooShort},
		HeaderError{Kind: ErrFrameTooShort},
		FirstTagError{Kind: ErrFrameTooShort},
		SecondTagError{Kind: ErrFrameTooShort},
	} {
		require.ErrorIs(t, err, ErrFrameTooShort)
		require.NotErrorIs(t, err, ErrDataEndExceeded)

		wrapped := Wrap(err)
		require.ErrorIs(t, wrapped, ErrFrameTooShort)

		var ethErr Error
		require.True(t, errors.As(wrapped, &ethErr))
		require.Equal(t, err, ethErr.Err)
	}
}

func TestWrap(t *testing.T) {
	require.Nil(t, Wrap(nil))

	foreign := errors.New("foreign")
	require.Equal(t, foreign, Wrap(foreign))

	for _, tc := range []struct {
		err error
		op  Op
	}{
		{CreationError{Kind: ErrFrameTooShort}, OpNew},
		{VLANCreationError{Kind: ErrFrameTooShort}, OpNewWithVLAN},
		{MatchError{Kind: ErrOutOfBoundsBufferAccess}, OpMatchWithVLAN},
		{HeaderError{Kind: ErrOutOfBoundsBufferAccess}, OpHeader},
		{FirstTagError{Kind: ErrNotVLANTagged}, OpFirstTag},
		{SecondTagError{Kind: ErrNotVLANTagged}, OpSecondTag},
	} {
		t.Run(tc.op.String(), func(t *testing.T) {
			wrapped := Wrap(tc.err)
			require.Equal(t, Error{Op: tc.op, Err: tc.err}, wrapped)
			require.Equal(t, tc.err.Error(), wrapped.Error())

			// Wrapping is idempotent
			require.Equal(t, wrapped, Wrap(wrapped))
		})
	}

	require.Equal(t, "unknown", Op(0).String())
	require.Equal(t, "get header", Error{Op: OpHeader}.Error())
}

func TestMatchErrorCreation(t *testing.T) {
	buf := testHeader(0x81, 0x00, 0x00, 0x05, 0xAB, 0xCD, 0, 0, 0, 0)

	_, _, _, matchErr := MatchWithVLAN(buf)
	_, _, creationErr := NewWithVLAN(buf, End(buf))

	require.Equal(t, MatchError{Kind: ErrNoRecognizedEtherType, EtherType: 0xABCD}, matchErr)
	require.Equal(t, VLANCreationError{Kind: ErrNoRecognizedEtherType, EtherType: 0xABCD}, creationErr)
	require.Equal(t, matchErr.Error(), creationErr.Error())
}
