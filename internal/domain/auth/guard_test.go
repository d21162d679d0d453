package auth

import "testing"

func TestAuthenticate_MissingServerSecret(t *testing.T) {
	t.Parallel()

	// Server misconfiguration wins regardless of what the client sent.
	for _, header := range []string{"", "Bearer anything", "Bearer "} {
		if got := Authenticate(header, ""); got != MissingServerSecret {
			t.Errorf("Authenticate(%q, \"\") = %v, want MissingServerSecret", header, got)
		}
	}
}

func TestAuthenticate_Authorized(t *testing.T) {
	t.Parallel()

	secret := "s3cret-token"
	if got := Authenticate("Bearer "+secret, secret); got != Authorized {
		t.Errorf("Authenticate = %v, want Authorized", got)
	}
}

func TestAuthenticate_BearerPrefixIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	secret := "s3cret-token"
	for _, prefix := range []string{"bearer ", "BEARER ", "BeArEr "} {
		if got := Authenticate(prefix+secret, secret); got != Authorized {
			t.Errorf("Authenticate(%q...) = %v, want Authorized", prefix, got)
		}
	}
}

func TestAuthenticate_BareCredentialWithoutPrefix(t *testing.T) {
	t.Parallel()

	// A header without the Bearer prefix is treated as the bare credential.
	secret := "s3cret-token"
	if got := Authenticate(secret, secret); got != Authorized {
		t.Errorf("Authenticate(bare) = %v, want Authorized", got)
	}
}

func TestAuthenticate_Unauthorized(t *testing.T) {
	t.Parallel()

	secret := "s3cret-token"
	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"empty credential", "Bearer "},
		{"wrong token same length", "Bearer s3cret-tokeX"},
		{"wrong token shorter", "Bearer s3cret"},
		{"wrong token longer", "Bearer s3cret-token-and-more"},
		{"secret with wrong prefix", "Basic " + secret},
	}
	for _, tt := range tests {
		if got := Authenticate(tt.header, secret); got != Unauthorized {
			t.Errorf("%s: Authenticate(%q) = %v, want Unauthorized", tt.name, tt.header, got)
		}
	}
}

func TestAuthenticate_LengthGateBeforeCompare(t *testing.T) {
	t.Parallel()

	// ConstantTimeCompare requires equal-length inputs; a length mismatch
	// must reject without reaching it. This exercises the extreme cases.
	if got := Authenticate("Bearer x", "a-much-longer-secret"); got != Unauthorized {
		t.Errorf("short credential = %v, want Unauthorized", got)
	}
	if got := Authenticate("Bearer "+string(make([]byte, 1<<16)), "short"); got != Unauthorized {
		t.Errorf("huge credential = %v, want Unauthorized", got)
	}
}

func TestResult_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		result Result
		want   string
	}{
		{Authorized, "authorized"},
		{MissingServerSecret, "missing_server_secret"},
		{Unauthorized, "unauthorized"},
		{Result(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.result.String(); got != tt.want {
			t.Errorf("Result(%d).String() = %q, want %q", tt.result, got, tt.want)
		}
	}
}
