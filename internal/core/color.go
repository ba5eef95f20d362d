package core

// Color names the role a screen cell plays in the scene. The platform picks
// the actual terminal colour for each role.
type Color uint8

const (
	ColorDefault    Color = iota // Sky, box frames, plain text
	ColorPipe                    // Pipe body
	ColorPipeCap                 // Lip of a pipe facing the gap
	ColorBird                    // Bird in flight
	ColorBirdEye                 // Beak side of the bird
	ColorCrashed                 // Bird after the run ended
	ColorGround                  // Scrolling floor texture
	ColorGroundEdge              // Top row of the floor
	ColorText                    // Score and overlay titles
)
