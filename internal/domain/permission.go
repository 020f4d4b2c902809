package domain

// PermissionState is the raw per-permission state reported by the OS
type PermissionState string

const (
	PermissionGranted             PermissionState = "granted"
	PermissionDenied              PermissionState = "denied"
	PermissionPrompt              PermissionState = "prompt"
	PermissionPromptWithRationale PermissionState = "prompt-with-rationale"
)

// Android permission names used by the storage negotiation
const (
	PermReadMediaAudio       = "android.permission.READ_MEDIA_AUDIO"
	PermReadMediaVideo       = "android.permission.READ_MEDIA_VIDEO"
	PermReadExternalStorage  = "android.permission.READ_EXTERNAL_STORAGE"
	PermWriteExternalStorage = "android.permission.WRITE_EXTERNAL_STORAGE"
	PermLegacyStorage        = "storage"
)

// ScopedMediaSDK is the Android SDK level (Android 13) at which the
// coarse storage permission is replaced by per-media-type grants.
const ScopedMediaSDK = 33

// Grant is the canonical outcome of a permission query or request.
// Heterogeneous native result shapes are normalized into it at the
// bridge boundary, before any workflow logic branches.
type Grant int

const (
	GrantDenied Grant = iota
	GrantGranted
)

// Granted reports whether the grant allows the operation
func (g Grant) Granted() bool { return g == GrantGranted }

// PermissionResult is the per-permission result shape returned by the
// Permissions capability. Older plugin generations report a bare
// boolean, newer ones a state string; either field may be set.
type PermissionResult struct {
	State   PermissionState `json:"state,omitempty"`
	Boolean *bool           `json:"granted,omitempty"`
}

// Normalize collapses either result shape into a Grant. Anything that
// is not an explicit grant is treated as denied.
func (r PermissionResult) Normalize() Grant {
	if r.State == PermissionGranted {
		return GrantGranted
	}
	if r.Boolean != nil && *r.Boolean {
		return GrantGranted
	}
	return GrantDenied
}

// PermissionTier selects which permission set a host requires
type PermissionTier string

const (
	TierLegacy      PermissionTier = "legacy"
	TierScopedMedia PermissionTier = "scoped-media"
)

// TierForSDK maps an Android SDK level to the permission tier it uses
func TierForSDK(sdk int) PermissionTier {
	if sdk >= ScopedMediaSDK {
		return TierScopedMedia
	}
	return TierLegacy
}

// RequiredPermissions returns the permission set a tier must hold
// before file I/O may proceed. All of them must be granted.
func RequiredPermissions(tier PermissionTier) []string {
	if tier == TierScopedMedia {
		return []string{PermReadMediaAudio, PermReadMediaVideo}
	}
	return []string{PermReadExternalStorage, PermWriteExternalStorage}
}
