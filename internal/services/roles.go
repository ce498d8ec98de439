package services

import "campaignhub/internal/models"

// roleMismatch returns the error for a caller whose token role cannot own
// the given profile kind, or nil when it can.
func roleMismatch(caller models.Caller, profile models.Role) *Error {
	switch profile {
	case models.RoleAdvertiser:
		switch caller.Role {
		case models.RoleAdvertiser:
			return nil
		default:
			return ForbiddenError(CodeAdvertiserRoleMismatch, "Only advertiser accounts can manage an advertiser profile")
		}
	case models.RoleInfluencer:
		switch caller.Role {
		case models.RoleInfluencer:
			return nil
		default:
			return ForbiddenError(CodeInfluencerRoleMismatch, "Only influencer accounts can manage an influencer profile")
		}
	}
	return ForbiddenError(CodeUnauthorized, "Unknown profile kind")
}
