// SPDX-License-Identifier: GPL-2.0-or-later

// Package cvars registers the tunables of the portal engine.
package cvars

import (
	"portalkit/cvar"
)

var (
	AnomalyDistance        *cvar.Cvar
	MomentumSnap           *cvar.Cvar
	ObliqueDisableDistance *cvar.Cvar
	ObliqueOffset          *cvar.Cvar
	ReceiveAssumeTicks     *cvar.Cvar
	ResolutionScale        *cvar.Cvar
	TeleportPlaneOffset    *cvar.Cvar
	WindowFsaa             *cvar.Cvar
	WindowVsync            *cvar.Cvar
)

func init() {
	// distance between tracked head and simulated body above which the
	// body position is authoritative for crossing tests
	AnomalyDistance = cvar.MustRegister("pk_anomaly_distance", "1", cvar.ARCHIVE)
	MomentumSnap = cvar.MustRegister("pk_momentum_snap", "0", cvar.ARCHIVE)
	// skip oblique clipping when the eye is closer than this to the
	// partner surface, right after a teleport
	ObliqueDisableDistance = cvar.MustRegister("pk_oblique_disable_distance", "0.25", cvar.ARCHIVE)
	ObliqueOffset = cvar.MustRegister("pk_oblique_offset", "0", cvar.ARCHIVE)
	// ticks the receiving portal assumes the agent is already in its
	// trigger volume after a transfer
	ReceiveAssumeTicks = cvar.MustRegister("pk_receive_assume_ticks", "3", cvar.ARCHIVE)
	ResolutionScale = cvar.MustRegister("pk_resolution_scale", "1", cvar.ARCHIVE)
	TeleportPlaneOffset = cvar.MustRegister("pk_teleport_plane_offset", "0", cvar.ARCHIVE)
	WindowFsaa = cvar.MustRegister("pk_window_fsaa", "0", cvar.ARCHIVE)
	WindowVsync = cvar.MustRegister("pk_window_vsync", "1", cvar.ARCHIVE)
}
