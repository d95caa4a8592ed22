package corridor

// BuildOptions aggregates every tunable of the corridorize pipeline.
type BuildOptions struct {
	Compat      CompatOptions
	ChainBuild  ChainBuildOptions
	Prune       PruneOptions
	Thresholds  ChainLengthThresholds
}

// DefaultBuildOptions returns the documented defaults for every stage.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Compat:     DefaultCompatOptions(),
		ChainBuild: DefaultChainBuildOptions(),
		Prune:      DefaultPruneOptions(),
		Thresholds: DefaultChainLengthThresholds(),
	}
}
