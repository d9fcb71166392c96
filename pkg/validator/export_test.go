package validator

// ResetDefaults unfreezes and clears the process-wide defaults.
func ResetDefaults() {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	globalOptions = Options{}
	defaultsFrozen.Store(false)
}
