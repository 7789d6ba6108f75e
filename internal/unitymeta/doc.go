// Package unitymeta renders the Unity-specific files of a UPM package:
// package.json, the runtime assembly definition and .meta files.
//
// Unity identifies every asset by the GUID in its .meta file. The runtime
// assembly definition keeps a fixed GUID across releases so projects that
// reference it by GUID keep working. Placeholder metas for other assets use
// name-based GUIDs derived from the package name and the asset path, so
// regenerating a release produces the same GUIDs.
package unitymeta
