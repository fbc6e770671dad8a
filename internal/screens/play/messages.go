package play

import "time"

// tickMsg is sent once per second to drive the controller's countdown,
// auto-advance, and memory phase transitions.
type tickMsg time.Time
