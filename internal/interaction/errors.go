package interaction

import "errors"

// ErrNarrationDisabled is returned by Narrate when no narrator is configured.
var ErrNarrationDisabled = errors.New("narration disabled")
