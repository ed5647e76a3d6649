package domain

// AccessKeyID identifies an access key and the provider that owns it.
type AccessKeyID struct {
	KeyCode      string `json:"keyCode"`
	ProviderUUID string `json:"providerUUID"`
}

// AccessKeyInfo holds the SSH material of an access key.
type AccessKeyInfo struct {
	PrivateKey string `json:"privateKey"`
	SSHUser    string `json:"sshUser"`
}

// AccessKey is an SSH key pair registered for a provider.
type AccessKey struct {
	IDKey   AccessKeyID   `json:"idKey"`
	KeyInfo AccessKeyInfo `json:"keyInfo"`
}

// KeyCodes returns the key codes of keys in input order.
func KeyCodes(keys []AccessKey) []string {
	codes := make([]string, 0, len(keys))
	for _, k := range keys {
		codes = append(codes, k.IDKey.KeyCode)
	}
	return codes
}
