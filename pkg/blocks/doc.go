// Package blocks converts raw contraption blocks into the fixed-shape records
// consumed by the fcsim physics engine.
//
// A level or design document holds two ordered groups of blocks: the blocks
// placed by the player (the design) and the blocks pre-placed by the level
// author. Each raw block carries a tag naming its shape and behavior, its
// geometry as source text, a goal flag and up to any number of joint targets.
//
// # Classification
//
// [Classify] maps a tag and goal flag to a [SimType]. The table is closed:
// the nine tags listed in [Tags] are the only accepted inputs and anything
// else fails with an UNKNOWN_BLOCK_TYPE error. Goal blocks are forced into
// [GoalCircle] (for NoSpinWheel) or [GoalRect] (for every other tag).
//
// # Normalization
//
// [Normalize] validates one [RawBlock] and returns a [Block]. Geometry is kept
// as the exact source text so that the emitted table reproduces the document
// byte for byte. Joints are packed into two slots: missing slots hold
// [NoJoint] and joints beyond the second are dropped. [Options.Warn] is
// called for every block that loses joints this way.
//
// # Emission
//
// [Build] normalizes the player group followed by the level group, and
// [WriteC] / [Emit] render the result as a C array literal:
//
//	struct fcsim_block blocks[] = {
//		{ STAT_RECT, 10, 20, 5, 5, 0, { -1, -1 } },
//	};
//
// Every step fails fast. On error no part of the array is returned.
package blocks
