package app

import (
	"github.com/agentstation/openmwmm/internal/appcontext"
)

// Interface is an alias to the shared appcontext.Interface, so callers can
// depend on the app package without importing internal/appcontext directly.
type Interface = appcontext.Interface

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)
