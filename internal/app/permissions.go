package app

import (
	"context"
	"fmt"

	"github.com/yourusername/flash-convert-go/internal/domain"
	"github.com/yourusername/flash-convert-go/internal/history"
	"go.uber.org/zap"
)

// PermissionNegotiator resolves whether file I/O may proceed on the
// current host. Query and request failures are treated as "not
// granted" and never propagate to the caller.
type PermissionNegotiator struct {
	bridge  domain.Bridge
	history *history.History
	logger  *zap.Logger
}

// NewPermissionNegotiator creates a permission negotiator
func NewPermissionNegotiator(bridge domain.Bridge, hist *history.History, logger *zap.Logger) *PermissionNegotiator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PermissionNegotiator{bridge: bridge, history: hist, logger: logger}
}

// EnsureStoragePermission returns true when the caller may proceed
// with file I/O. Outside a native host there is nothing to negotiate;
// on Android the required permission set depends on the OS tier, and
// every required permission must be granted. Already-held grants
// short-circuit without prompting the user again.
func (n *PermissionNegotiator) EnsureStoragePermission(ctx context.Context) bool {
	if !n.bridge.Native() {
		n.history.Append("Browser environment, simulating permission granted", domain.SeverityInfo)
		return true
	}

	if !n.bridge.Available(domain.CapPermissions) {
		n.history.Append("Permissions capability not available, continuing without storage grants", domain.SeverityWarning)
		return true
	}

	if n.bridge.Platform() != "android" {
		n.history.Append(fmt.Sprintf("%s does not require explicit storage permission", n.bridge.Platform()), domain.SeverityInfo)
		return true
	}

	perms, _ := n.bridge.Permissions()

	tier := n.detectTier(ctx)
	required := domain.RequiredPermissions(tier)

	if n.allGranted(ctx, perms, required) {
		n.history.Append("Storage permissions already granted", domain.SeveritySuccess)
		return true
	}

	granted, err := n.request(ctx, perms, required)
	if err != nil && tier == domain.TierScopedMedia {
		// One fallback to the coarse legacy permission, never a retry loop
		n.history.Append("Scoped media permission request failed, falling back to legacy storage permission", domain.SeverityWarning)
		granted, err = n.request(ctx, perms, []string{domain.PermLegacyStorage})
	}
	if err != nil {
		n.history.Append("Error requesting storage permission: "+err.Error(), domain.SeverityError)
		return false
	}

	if granted {
		n.history.Append("Storage permission granted", domain.SeveritySuccess)
	} else {
		n.history.Append("Storage permission denied", domain.SeverityWarning)
	}
	return granted
}

// detectTier determines the Android permission tier. Version detection
// failures fall back to the legacy tier; assuming the older model can
// only over-ask, never under-ask.
func (n *PermissionNegotiator) detectTier(ctx context.Context) domain.PermissionTier {
	device, ok := n.bridge.Device()
	if !ok {
		n.history.Append("Could not detect Android version, using legacy permission model", domain.SeverityWarning)
		return domain.TierLegacy
	}

	info, err := device.Info(ctx)
	if err != nil {
		n.history.Append("Could not detect Android version, using legacy permission model", domain.SeverityWarning)
		return domain.TierLegacy
	}

	n.history.Append(fmt.Sprintf("Detected Android SDK version: %d", info.AndroidSDKVersion), domain.SeverityInfo)
	return domain.TierForSDK(info.AndroidSDKVersion)
}

// allGranted reports whether every required permission is already
// held. A failed query counts as not granted.
func (n *PermissionNegotiator) allGranted(ctx context.Context, perms domain.PermissionsPlugin, required []string) bool {
	for _, name := range required {
		result, err := perms.Query(ctx, name)
		if err != nil {
			n.logger.Warn("Permission query failed, treating as not granted",
				zap.String("permission", name),
				zap.Error(err))
			return false
		}
		if !result.Normalize().Granted() {
			return false
		}
	}
	return true
}

// request prompts for the named permissions and ANDs the normalized
// per-permission outcomes.
func (n *PermissionNegotiator) request(ctx context.Context, perms domain.PermissionsPlugin, names []string) (bool, error) {
	results, err := perms.Request(ctx, names)
	if err != nil {
		return false, err
	}

	for _, name := range names {
		result, ok := results[name]
		if !ok || !result.Normalize().Granted() {
			return false, nil
		}
	}
	return true, nil
}
