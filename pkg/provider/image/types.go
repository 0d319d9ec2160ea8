package image

// Request describes one scene to illustrate.
type Request struct {
	// Prompt is the generation prompt produced by the analysis stage.
	Prompt string

	// Style names the illustration style preset from the configuration.
	Style string

	// Resolution is the output size as "WIDTHxHEIGHT".
	Resolution string

	// Steps is the diffusion step count.
	Steps int

	// CFGScale controls prompt adherence.
	CFGScale float64

	// Variations is how many candidates to render.
	Variations int
}

// Image is one rendered candidate.
type Image struct {
	// Data is the encoded image.
	Data []byte

	// Format is the container format (e.g., "png").
	Format string

	// Seed reproduces this candidate when re-rendered.
	Seed int64
}
