package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/mjosborne1/check-sparked-server/internal/core/domain"
	"github.com/mjosborne1/check-sparked-server/internal/core/ports"
)

const profileSeparator = "----------------------------------------"

// ProfileAuditor checks that each tracked canonical profile reports the
// expected active version on the server.
type ProfileAuditor struct {
	client          ports.FHIRClient
	console         ports.Console
	logger          ports.Logger
	profiles        []domain.ProfileCheck
	expectedVersion string
}

func NewProfileAuditor(client ports.FHIRClient, console ports.Console, logger ports.Logger, profiles []domain.ProfileCheck, expectedVersion string) *ProfileAuditor {
	return &ProfileAuditor{
		client:          client,
		console:         console,
		logger:          logger,
		profiles:        profiles,
		expectedVersion: expectedVersion,
	}
}

// Run audits every profile in table order. A failure in one profile is
// reported on that profile's lines only and never aborts the rest.
func (a *ProfileAuditor) Run(ctx context.Context) []domain.ProfileCheckResult {
	results := make([]domain.ProfileCheckResult, 0, len(a.profiles))

	for _, profile := range a.profiles {
		result := a.checkProfile(ctx, profile)
		results = append(results, result)
		a.console.Println(profileSeparator)
	}
	return results
}

func (a *ProfileAuditor) checkProfile(ctx context.Context, profile domain.ProfileCheck) domain.ProfileCheckResult {
	result := domain.ProfileCheckResult{Name: profile.Name}

	set, err := a.client.SearchStructureDefinitions(ctx, profile.CanonicalURL)
	if err != nil {
		a.logger.Errorf(ctx, err, "profile check failed for %s", profile.Name)
		a.console.Printf("[X] Error checking %s: %v\n", profile.Name, err)
		result.Err = err
		return result
	}

	if set.Total == 0 {
		a.console.Printf("[!] %s: Profile not found on server.\n", profile.Name)
		return result
	}
	result.Found = true

	for _, entry := range set.Entries {
		result.AllVersions = append(result.AllVersions, entry.Version)
		if entry.Status == "active" {
			result.ActiveVersions = append(result.ActiveVersions, entry.Version)
		}
	}

	active := "NONE"
	if len(result.ActiveVersions) > 0 {
		active = result.ActiveVersions[0]
	}

	a.console.Printf("[*] %s:\n", profile.Name)
	a.console.Printf("    - All Found Versions: %s\n", strings.Join(result.AllVersions, ", "))
	a.console.Printf("    - Currently Active:   %s\n", active)

	// Containment on the rendered list, not structural equality. Loose,
	// but it is the check historical reports were produced with.
	if strings.Contains(fmt.Sprint(result.ActiveVersions), a.expectedVersion) {
		result.Verified = true
		a.console.Printf("    ✅ VERIFIED: Server is updated to %s artifacts.\n", a.expectedVersion)
	} else {
		a.console.Printf("    ⚠️ WARNING: Server is not serving %s artifacts.\n", a.expectedVersion)
	}
	return result
}
