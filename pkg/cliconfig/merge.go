package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Values from a loaded file are applied when their key was present, so an
// explicit 0 or false overrides. Otherwise only non-zero values are applied.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	mergeInt(target, source, &target.Port, source.Port, "port", sourceType)
	mergeInt(target, source, &target.ReadTimeout, source.ReadTimeout, "readTimeout", sourceType)
	mergeInt(target, source, &target.WriteTimeout, source.WriteTimeout, "writeTimeout", sourceType)
	mergeInt(target, source, &target.SessionTTL, source.SessionTTL, "sessionTTL", sourceType)
	mergeInt(target, source, &target.SweepInterval, source.SweepInterval, "sweepInterval", sourceType)

	mergeString(target, &target.SessionCookie, source.SessionCookie, "sessionCookie", sourceType)
	mergeString(target, &target.LogLevel, source.LogLevel, "logLevel", sourceType)
	mergeString(target, &target.LogFormat, source.LogFormat, "logFormat", sourceType)
	mergeString(target, &target.LogFile, source.LogFile, "logFile", sourceType)

	// For booleans, checking `if source.X` cannot detect an explicit false.
	// SetFields (populated during file loading) says whether the key was
	// present. Without it only true values are merged.
	if boolIsSet(source, "cookieSecure") {
		target.CookieSecure = source.CookieSecure
		target.Sources["cookieSecure"] = sourceType
	}
	if boolIsSet(source, "metrics") {
		target.Metrics = source.Metrics
		target.Sources["metrics"] = sourceType
	}
	if boolIsSet(source, "verbose") {
		target.Verbose = source.Verbose
		target.Sources["verbose"] = sourceType
	}
	if boolIsSet(source, "json") {
		target.JSON = source.JSON
		target.Sources["json"] = sourceType
	}
}

func mergeInt(target, source *CLIConfig, dst *int, v int, key, sourceType string) {
	if fieldIsSet(source, key, v != 0) {
		*dst = v
		target.Sources[key] = sourceType
	}
}

func mergeString(target *CLIConfig, dst *string, v, key, sourceType string) {
	if v != "" {
		*dst = v
		target.Sources[key] = sourceType
	}
}

// fieldIsSet reports whether yamlKey was present in the file cfg was loaded
// from. Configs built in code have no SetFields and fall back to nonZero.
func fieldIsSet(cfg *CLIConfig, yamlKey string, nonZero bool) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	return nonZero
}

// boolIsSet reports whether a boolean field identified by its YAML key was
// explicitly set in the source config.
func boolIsSet(cfg *CLIConfig, yamlKey string) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	switch yamlKey {
	case "cookieSecure":
		return cfg.CookieSecure
	case "metrics":
		return cfg.Metrics
	case "verbose":
		return cfg.Verbose
	case "json":
		return cfg.JSON
	}
	return false
}
