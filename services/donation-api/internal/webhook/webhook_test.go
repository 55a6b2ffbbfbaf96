package webhook

import (
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/donation-service/pkg/codegen"
	"github.com/nimeshabuddhika/donation-service/pkg/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
)

type fakeVerifier struct {
	event stripe.Event
	err   error
	calls int
}

func (f *fakeVerifier) VerifyEvent([]byte, string) (stripe.Event, error) {
	f.calls++
	return f.event, f.err
}

type fakeDispatcher struct {
	events []stripe.Event
}

func (f *fakeDispatcher) Dispatch(event stripe.Event) {
	f.events = append(f.events, event)
}

func TestServeReceiveEvent_Dispatches(t *testing.T) {
	// Arrange
	verifier := &fakeVerifier{event: stripe.Event{ID: "evt_1", Type: "payment_intent.succeeded"}}
	dispatcher := &fakeDispatcher{}

	// Act
	env := ServeReceiveEvent(verifier, dispatcher, "t=1,v1=abc", []byte(`{}`))

	// Assert
	assert.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, gin.H{"data": nil}, env.Body)
	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, "evt_1", dispatcher.events[0].ID)
}

func TestServeReceiveEvent_Rejected(t *testing.T) {
	tests := []struct {
		name      string
		signature string
		verifyErr error
		want      Error
		verified  bool
	}{
		{name: "missing signature", signature: "", want: ErrMissingStripeSignature},
		{name: "signature not a header value", signature: "t=1\x00", want: ErrInvalidStripeSignature},
		{name: "signature mismatch", signature: "t=1,v1=bad", verifyErr: errors.New("no signatures found matching"), want: ErrInvalidStripeSignature, verified: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{err: tt.verifyErr}
			dispatcher := &fakeDispatcher{}

			env := ServeReceiveEvent(verifier, dispatcher, tt.signature, []byte(`{}`))

			assert.Equal(t, http.StatusInternalServerError, env.Status)
			assert.Equal(t, gin.H{"error": response.UnknownErrorMessage}, env.Body)
			assert.ErrorIs(t, env.Err(), tt.want)
			assert.Empty(t, dispatcher.events)
			assert.Equal(t, tt.verified, verifier.calls == 1)
		})
	}
}

func TestIsHeaderValue(t *testing.T) {
	assert.True(t, isHeaderValue("t=1492774577,v1=5257a869e7ecebeda32affa62cdca3fa51cad7e77a0e56ff536d0ce8e108d8bd"))
	assert.True(t, isHeaderValue("a b\tc"))
	assert.False(t, isHeaderValue("t=1\r\nX-Evil: 1"))
	assert.False(t, isHeaderValue("café"))
}

func TestGeneratedFileUpToDate(t *testing.T) {
	want, err := codegen.Generate(".", codegen.Options{Types: []string{"Error"}, Args: []string{"--type=Error"}})
	require.NoError(t, err)

	got, err := os.ReadFile(codegen.DefaultOutput)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got), "run go generate ./...")
}
