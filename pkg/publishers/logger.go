package publishers

import "github.com/samvad-hq/atlas-client/pkg/atlas"

// Logger is shared with the Atlas client so one logger serves both.
type Logger = atlas.Logger

func ensureLogger(log Logger) Logger { return atlas.OrNop(log) }
