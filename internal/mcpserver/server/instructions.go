package server

import (
	"fmt"
	"strings"
)

// instructions builds the assistant-facing guidance text returned by
// initialize. Recomputed on each call so a credential reload is reflected.
func (s *Server) instructions() string {
	identity := s.dispatcher.Identity()

	var b strings.Builder
	b.WriteString("This server manages cyber-training ranges: deployable lab environments built from blueprints. ")
	b.WriteString("Deploy and destroy are asynchronous; both return a job id to poll with check_job_status.\n\n")

	switch {
	case identity.Anonymous:
		b.WriteString("Current identity: anonymous. Most tools require authentication; use the login tool first.")
	case identity.Expired():
		b.WriteString("Current identity: expired credential. Use the login tool to re-authenticate.")
	default:
		who := identity.Role()
		if identity.Email != "" {
			who = fmt.Sprintf("%s (%s)", identity.Email, identity.Role())
		}
		b.WriteString("Current identity: " + who + ".")
		if !identity.Admin {
			b.WriteString(" Blueprint management and cloud secret updates are administrator operations; the backend will reject them for standard users.")
		}
	}

	return b.String()
}
