package interior

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the codespace of the interior errors
const ModuleName = "interior"

var (
	// ErrInvalidModel is returned for non-positive masses, radii or densities and
	// for MoI targets outside (0, 1)
	ErrInvalidModel = errorsmod.Register(ModuleName, 2, "invalid moon model")

	// ErrDegenerateDensity is returned when the mass inversion would divide by zero
	ErrDegenerateDensity = errorsmod.Register(ModuleName, 3, "degenerate layer densities")

	// ErrInvalidGrid is returned for empty or malformed parameter grids
	ErrInvalidGrid = errorsmod.Register(ModuleName, 4, "invalid parameter grid")

	// ErrDomain marks a grid point with no physical solution. Scans skip it.
	ErrDomain = errorsmod.Register(ModuleName, 5, "unphysical grid point")

	// ErrNoSolution is returned when every grid point was rejected
	ErrNoSolution = errorsmod.Register(ModuleName, 6, "no valid candidate in grid")
)
