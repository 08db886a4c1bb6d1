package href

import (
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// ASCIIHostname returns the hostname of the u with every internationalized
// label converted to its ASCII (punycode) form, for example "bücher.example"
// becomes "xn--bcher-kva.example". Userinfo and IPv6 literals are kept as
// they are.
func (u *URL) ASCIIHostname() (string, error) {
	return convertHostname(u.hostname, idna.Lookup.ToASCII)
}

// UnicodeHostname returns the hostname of the u with every punycode label
// converted back to its Unicode form.
func (u *URL) UnicodeHostname() (string, error) {
	return convertHostname(u.hostname, idna.Display.ToUnicode)
}

// Domain returns the registrable domain (eTLD+1) of the hostname of the u,
// for example "example.co.uk" for "www.example.co.uk".
func (u *URL) Domain() (string, error) {
	ah, err := u.ASCIIHostname()
	if err != nil {
		return "", err
	}

	if i := strings.LastIndexByte(ah, '@'); i >= 0 {
		ah = ah[i+1:]
	}

	return publicsuffix.EffectiveTLDPlusOne(strings.ToLower(ah))
}

// convertHostname converts the host part of the hostname with the convert.
func convertHostname(
	hostname string,
	convert func(string) (string, error),
) (string, error) {
	userinfo, host := "", hostname
	if i := strings.LastIndexByte(hostname, '@'); i >= 0 {
		userinfo, host = hostname[:i+1], hostname[i+1:]
	}

	if host == "" || strings.HasPrefix(host, "[") {
		return hostname, nil
	}

	h, err := convert(host)
	if err != nil {
		return "", err
	}

	return userinfo + h, nil
}
