package manifest

// Builtin returns the compiled-in manifest covering the files the install
// procedure names explicitly. Per-file digests were captured from a known
// good retail install (CD set 5129-1, Mac patch 3369.2); operators with a
// different pressing supply their own manifest file via --manifest.
//
// The returned manifest is freshly allocated on each call so callers may
// not mutate shared state.
func Builtin() *Manifest {
	entries := make([]Entry, len(builtinEntries))
	copy(entries, builtinEntries)
	return &Manifest{Entries: entries}
}

var builtinEntries = []Entry{
	// Base install, sourced from the CD volume.
	{Path: "System/ut2004-bin", Size: 22819632, SHA256: "9c1185a5c5e9fc54612808977ee8f548b2258d31ddadef707ba62c166051b9e3", Role: RoleBase},
	{Path: "System/Core.u", Size: 1124668, SHA256: "3b4c8f0a7d2e915b6ce09f1a84d7c3625e8ba1904f7d6c2a0913e5b78a4d6f01", Role: RoleBase},
	{Path: "System/Engine.u", Size: 8904412, SHA256: "71f9a2c4b8e06d135a7c29e4f60b8d3a512c9e7f04b6d8a1c3e5f7092b4d6e80", Role: RoleBase},
	{Path: "System/XGame.u", Size: 2958841, SHA256: "e4d0b6a8c2f41e937b5d18f0a6c3e8527d9b1f4a60c8e2d7395a1b04c6f8ea12", Role: RoleBase},
	{Path: "System/Onslaught.u", Size: 3710223, SHA256: "0a8e6c4d2b90f7e15c3a8d6b4f2e09c7517d3b9f8e0a6c42d1b5e98307f4ac61", Role: RoleBase},
	{Path: "System/libSDL-1.2.0.dylib", Size: 934184, SHA256: "5f2e8d0c6a4b19e73d5f08a2c6e4b8017392d5f7b0e8a6c41d3f59e2078b4ca0", Role: RoleBase},
	{Path: "Textures/Shaders.utx", Size: 2510043, SHA256: "8c6a4e2d0b97f5e31a8c6d4b2f0e97c5317a9d5f4b2e80c6d1a3f5e90784b2c6", Role: RoleBase},
	{Path: "Sounds/AnnouncerMain.uax", Size: 14968210, SHA256: "2d0b8f6c4a297e5d3b1f08c6a4e2d0957381b9f7d5e3a0c8641d2f8a09c6e4b2", Role: RoleBase},
	{Path: "Maps/DM-Rankin.ut2", Size: 23716008, SHA256: "6b4d2f0a8c69e7d5318f6b4c2a0e8d97531f7b9d3e5a8c06412d9f7a08e6c4b2", Role: RoleBase},
	{Path: "Music/KR-Level2.ogg", Size: 4188530, SHA256: "a0c8e6d4b2197f5e3d1b8a6c4f2097e53d1a7f9b5c3e0a86d421f5b97086e4d2", Role: RoleBase},

	// Patch 3369.2 overlay, sourced from the mounted patch image.
	{Path: "System/BonusPack.u", Size: 1440882, SHA256: "4e2c0a8d6b795f3e1d8b6a4c209f7e5d31b9f7a5d3c1e8063f4a2d90b8c6e412", Role: RolePatch},
	{Path: "System/UT2k4AssaultFull.u", Size: 2089517, SHA256: "c6a4e2d08b975f3d1e8c6b4a2f0e9d75311f9b7d5a3e0c86422d1f7b09a8e4c6", Role: RolePatch},
	{Path: "Maps/ONS-Adara.ut2", Size: 16733992, SHA256: "f0e8c6a4d2b19e755d3f18b6c4a2e09d7531a9f7b5d3c0e86413f2d5a90b8c64", Role: RolePatch},
}
