package cavemesh

import "math"

// BuildOptions configures the graph construction pipeline (spec.md §6,
// "Configuration recognised by the builder"). Field names are YAML-tagged
// so a BuildOptions value round-trips through the CLI's `config`
// subcommand exactly like the teacher's own build-settings files
// (cmd/recast/cmd/config.go).
type BuildOptions struct {
	// BucketSize is the clearance quantum used by the zone partitioner.
	BucketSize float32 `yaml:"bucket_size"`

	// BucketCap clamps outlier clearance values before bucketing.
	BucketCap float32 `yaml:"bucket_cap"`

	// ZoneRadius is the maximum seed-distance a vertex may have and
	// still be admitted into a zone.
	ZoneRadius float32 `yaml:"zone_radius"`

	// SmoothRadius is the clearance-smoothing ball radius. Zero disables
	// smoothing.
	SmoothRadius float32 `yaml:"smooth_radius"`

	// SkipConnectAngle is the maximum surface-normal angle (in radians)
	// for which the mesh-preparation stage may add 2-hop "skip" edges.
	// Exposed so a future Mesh Adapter can use it; the core build
	// pipeline does not add skip edges itself, since it consumes the
	// adapter's edges as given.
	SkipConnectAngle float32 `yaml:"skip_connect_angle"`
}

// DefaultBuildOptions returns the option set with every spec.md §6
// default filled in.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		BucketSize:       0.5,
		BucketCap:        10,
		ZoneRadius:       10,
		SmoothRadius:     3,
		SkipConnectAngle: 0.1 * math.Pi,
	}
}

// withDefaults fills any zero-valued field of o, except SmoothRadius, with
// the corresponding default, so a zero-value BuildOptions{} behaves as if
// every field but SmoothRadius used its default (smoothing stays off).
func (o BuildOptions) withDefaults() BuildOptions {
	d := DefaultBuildOptions()
	if o.BucketSize == 0 {
		o.BucketSize = d.BucketSize
	}
	if o.BucketCap == 0 {
		o.BucketCap = d.BucketCap
	}
	if o.ZoneRadius == 0 {
		o.ZoneRadius = d.ZoneRadius
	}
	if o.SkipConnectAngle == 0 {
		o.SkipConnectAngle = d.SkipConnectAngle
	}
	// SmoothRadius == 0 is a legitimate "disabled" value, left as-is.
	return o
}
