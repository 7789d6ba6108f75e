package unitymeta

import (
	"strings"

	"github.com/google/uuid"
)

// StableGUID returns the GUID for the asset at relPath (forward slashes,
// relative to the package root) of the named package.
func StableGUID(packageName, relPath string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(packageName+"/"+relPath))
	return unityForm(id)
}

// NewGUID returns a random GUID in Unity's form.
func NewGUID() string {
	return unityForm(uuid.New())
}

// unityForm drops the dashes; Unity writes GUIDs as 32 lowercase hex digits.
func unityForm(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}
