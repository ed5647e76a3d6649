package auditlog

import "strings"

const redacted = "<redacted>"

// credentialFlags take a secret as their value.
var credentialFlags = map[string]bool{
	"--token":     true,
	"--api-token": true,
}

// SanitizeArgs returns a copy of args with credential flag values replaced,
// in both "--token v" and "--token=v" form.
func SanitizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		out[i] = arg

		if credentialFlags[arg] {
			if i+1 < len(args) {
				i++
				out[i] = redacted
			}
			continue
		}
		if name, _, ok := strings.Cut(arg, "="); ok && credentialFlags[name] {
			out[i] = name + "=" + redacted
		}
	}
	return out
}

// JoinArgs renders sanitized args the way they are stored in AuditEntry.Args.
func JoinArgs(args []string) string {
	return strings.Join(SanitizeArgs(args), " ")
}
