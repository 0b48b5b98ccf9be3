package logging

import "strings"

// FormatSubject builds the component/session/item subject string used in console output.
func FormatSubject(component, sessionID, itemID string) string {
	component = strings.TrimSpace(component)
	sessionID = strings.TrimSpace(sessionID)
	itemID = strings.TrimSpace(itemID)
	parts := make([]string, 0, 3)
	if component != "" {
		parts = append(parts, component)
	}
	if sessionID != "" {
		if len(sessionID) > 8 {
			sessionID = sessionID[:8]
		}
		parts = append(parts, "session "+sessionID)
	}
	if itemID != "" {
		parts = append(parts, "item #"+itemID)
	}
	return strings.Join(parts, " · ")
}
