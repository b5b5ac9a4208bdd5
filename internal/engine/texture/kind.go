package texture

// Kind is the role a texture plays in a material.
type Kind int

const (
	Diffuse Kind = iota
	Specular
	Normal
	Height
)

// SamplerPrefix returns the uniform name prefix shaders use for this kind.
// Samplers are numbered from 1: texture_diffuse1, texture_diffuse2, ...
func (k Kind) SamplerPrefix() string {
	switch k {
	case Specular:
		return "texture_specular"
	case Normal:
		return "texture_normal"
	case Height:
		return "texture_height"
	default:
		return "texture_diffuse"
	}
}

func (k Kind) String() string {
	switch k {
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	case Normal:
		return "normal"
	case Height:
		return "height"
	}
	return "unknown"
}
