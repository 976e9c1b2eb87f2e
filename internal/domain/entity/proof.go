package entity

// PKCEProof is a short-lived verifier/challenge pair stored between the
// authorization redirect and the provider callback. The session id that keys
// it doubles as the OAuth state parameter.
type PKCEProof struct {
	Verifier  string `json:"verifier"`
	Challenge string `json:"challenge"`
}
