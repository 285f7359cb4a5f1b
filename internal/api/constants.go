package api

import "time"

// timeFormat is the wire format for timestamps. All times are UTC.
const timeFormat = time.RFC3339
