package domain

// LoadSample is a point-in-time reading of system load, expressed as a
// percentage of total CPU capacity (1-minute load average divided by logical
// CPU count, times 100).
//
// Known reports whether the reading could be taken at all. An unknown sample
// means "admit immediately", never zero load or infinite load.
type LoadSample struct {
	Percent float64
	Known   bool
}
