// internal/workflow/payload.go
package workflow

import (
	"strings"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/docuseal"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/models"
)

// BuildDraftRequest merges user input with template defaults. Explicit input
// always wins over a template default; a template default wins over blank.
// Used for both draft creation and preview, which re-submit the full snapshot.
func BuildDraftRequest(template *models.LicenseTemplate, opts Options, input FormInput) docuseal.DraftRequest {
	req := docuseal.DraftRequest{
		TemplateID:         template.ID.String(),
		DocusealTemplateID: providerTemplateID(template, opts),
		ClientName:         strings.TrimSpace(input.ClientName),
		ClientEmail:        strings.TrimSpace(input.ClientEmail),
		TalentNames:        talentNames(template, input),
		LicenseFee:         template.LicenseFee,
		DurationDays:       template.DurationDays,
		CustomTerms:        template.CustomTerms,
	}

	if opts.FeeOverride != nil {
		req.LicenseFee = *opts.FeeOverride
	}

	if template.StartDate != nil {
		req.StartDate = template.StartDate.Format("2006-01-02")
	}

	return req
}

// BuildFinalizeRequest carries identity fields only: license_fee,
// duration_days, start_date, and custom_terms are never part of the finalize
// payload.
func BuildFinalizeRequest(template *models.LicenseTemplate, opts Options, input FormInput) docuseal.FinalizeRequest {
	return docuseal.FinalizeRequest{
		DocusealTemplateID: providerTemplateID(template, opts),
		ClientName:         strings.TrimSpace(input.ClientName),
		ClientEmail:        strings.TrimSpace(input.ClientEmail),
		TalentNames:        talentNames(template, input),
	}
}

func providerTemplateID(template *models.LicenseTemplate, opts Options) string {
	if opts.DocusealTemplateID != "" {
		return opts.DocusealTemplateID
	}
	return template.DocusealTemplateID
}

func talentNames(template *models.LicenseTemplate, input FormInput) string {
	if names := strings.TrimSpace(input.TalentNames); names != "" {
		return names
	}
	return template.TalentName
}
