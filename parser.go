package href

import "strings"

// parseInto resets the u and fills it with the components of the s.
//
// Components are extracted in order: the fragment from the first "#", the
// query from the first "?", then an optional "scheme://authority" prefix.
// Whatever remains is the pathname, taken verbatim.
func parseInto(u *URL, s string) {
	u.reset()

	if i := strings.IndexByte(s, '#'); i >= 0 {
		u.hash = normalizeHash(s[i:])
		s = s[:i]
	}

	if i := strings.IndexByte(s, '?'); i >= 0 {
		if dropped := u.query().deserialize(s[i:]); dropped > 0 {
			u.href().DEBUG("href: dropped empty query pairs", map[string]interface{}{
				"url":     s,
				"dropped": dropped,
			})
		}

		s = s[:i]
	}

	protocol, authority, rest, ok := splitAuthority(s)
	if !ok {
		u.pathname = s
		return
	}

	u.protocol = protocol
	u.schemeRelative = protocol == ""
	u.hostname, u.port = splitHostPort(authority)
	u.pathname = rest

	if u.port == "" && strings.HasSuffix(authority, ":") {
		u.href().DEBUG("href: dropped empty port", map[string]interface{}{
			"authority": authority,
		})
	}
}

// splitAuthority splits the s into the protocol (with its ":"), the
// authority and the rest. It reports false if the s does not start with an
// optional scheme followed by "//" and a non-empty authority.
func splitAuthority(s string) (protocol, authority, rest string, ok bool) {
	after := ""
	if i := schemeEnd(s); i > 0 && strings.HasPrefix(s[i+1:], "//") {
		protocol, after = s[:i+1], s[i+3:]
	} else if strings.HasPrefix(s, "//") {
		after = s[2:]
	} else {
		return "", "", "", false
	}

	authority, rest = after, ""
	if i := strings.IndexByte(after, '/'); i >= 0 {
		authority, rest = after[:i], after[i:]
	}

	if authority == "" {
		return "", "", "", false
	}

	return protocol, authority, rest, true
}

// schemeEnd returns the index of the ":" that ends the scheme at the start
// of the s, or -1 if the s does not start with a scheme.
func schemeEnd(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' || c == '+' || c == '-' || c == '.':
			if i == 0 {
				return -1
			}
		case c == ':':
			if i == 0 {
				return -1
			}

			return i
		default:
			return -1
		}
	}

	return -1
}

// splitHostPort splits the authority into the hostname and the port on its
// last ":". Colons inside an IPv6 literal or before the userinfo separator
// "@" are not considered. A trailing ":" results in an empty port.
func splitHostPort(authority string) (hostname, port string) {
	start := strings.LastIndexByte(authority, '@') + 1
	if i := strings.LastIndexByte(authority, ']'); i >= start {
		start = i + 1
	}

	i := strings.LastIndexByte(authority[start:], ':')
	if i < 0 {
		return authority, ""
	}

	i += start

	return authority[:i], authority[i+1:]
}

// normalizeProtocol appends a ":" to the non-empty p if it is missing.
func normalizeProtocol(p string) string {
	if p != "" && !strings.HasSuffix(p, ":") {
		return p + ":"
	}

	return p
}

// normalizeHash prepends a "#" to the non-empty h if it is missing. A lone
// "#" is the same as no hash.
func normalizeHash(h string) string {
	if h == "#" {
		return ""
	} else if h != "" && h[0] != '#' {
		return "#" + h
	}

	return h
}
