// Package address parses a Zonkey address (what a host passes the
// interpreter to load and run) and classifies the permission level a
// script loaded from it runs under, per spec.md §5.
package address

import "strings"

// Permission is the capability level a loaded script runs with. A
// zonkey: or file: address gets full native access; anything fetched over
// the network gets a reduced surface: the filesystem natives (ReadString,
// WriteString) and the application-registry natives (InstallApplication,
// RemoveApplication, InstalledApplications) fail with
// InsufficientPermissionLevel. Args, OpenLink and CloseTab are not gated.
type Permission int

const (
	NetworkOnly Permission = iota
	All
)

// Scheme is the address's kind, used both for loader dispatch and for the
// error:{...} synthetic addresses the host protocol reports failures
// through.
type Scheme int

const (
	SchemeZonkey Scheme = iota
	SchemeFile
	SchemeHTTP
	SchemeHTTPS
	SchemeError
)

// Address is a parsed address: its scheme, the remainder after the
// scheme prefix, and the derived permission level.
type Address struct {
	Scheme     Scheme
	Path       string
	Permission Permission
	Raw        string
}

// Parse classifies raw per spec.md §5's four address forms:
// zonkey:<path>, file:<path>, http(s):<url>, and error:{reason}.
func Parse(raw string) Address {
	switch {
	case strings.HasPrefix(raw, "zonkey:"):
		return Address{Scheme: SchemeZonkey, Path: strings.TrimPrefix(raw, "zonkey:"), Permission: All, Raw: raw}
	case strings.HasPrefix(raw, "file:"):
		return Address{Scheme: SchemeFile, Path: strings.TrimPrefix(raw, "file:"), Permission: All, Raw: raw}
	case strings.HasPrefix(raw, "https:"):
		return Address{Scheme: SchemeHTTPS, Path: raw, Permission: NetworkOnly, Raw: raw}
	case strings.HasPrefix(raw, "http:"):
		return Address{Scheme: SchemeHTTP, Path: raw, Permission: NetworkOnly, Raw: raw}
	case strings.HasPrefix(raw, "error:"):
		return Address{Scheme: SchemeError, Path: strings.TrimPrefix(raw, "error:"), Permission: NetworkOnly, Raw: raw}
	default:
		// A bare path is treated as a local file, matching the CLI's
		// `zonkey ./script.zonk` convenience form (spec.md §6).
		return Address{Scheme: SchemeFile, Path: raw, Permission: All, Raw: raw}
	}
}

// ErrorAddress builds the `error:{invalid_address}` / `error:{script_failed}`
// synthetic address the host protocol reports load failures through.
func ErrorAddress(reason string) Address {
	return Address{Scheme: SchemeError, Path: reason, Raw: "error:{" + reason + "}"}
}

const (
	ReasonInvalidAddress = "invalid_address"
	ReasonScriptFailed   = "script_failed"
)
