package services

const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"

	CodeUserAlreadyExists   = "USER_ALREADY_EXISTS"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeInvalidRole         = "INVALID_ROLE"
	CodeUserCreateError     = "USER_CREATE_ERROR"
	CodeUserFetchError      = "USER_FETCH_ERROR"
	CodeTermsNotAgreed      = "TERMS_NOT_AGREED"
	CodeUserValidationError = "USER_VALIDATION_ERROR"

	CodeAdvertiserAlreadyExists   = "ADVERTISER_ALREADY_EXISTS"
	CodeAdvertiserNotFound        = "ADVERTISER_NOT_FOUND"
	CodeAdvertiserCreateError     = "ADVERTISER_CREATE_ERROR"
	CodeAdvertiserValidationError = "ADVERTISER_VALIDATION_ERROR"
	CodeAdvertiserFetchError      = "ADVERTISER_FETCH_ERROR"
	CodeAdvertiserRoleMismatch    = "ADVERTISER_ROLE_MISMATCH"
	CodeDuplicateBusinessNumber   = "DUPLICATE_BUSINESS_NUMBER"

	CodeInfluencerAlreadyExists   = "INFLUENCER_ALREADY_EXISTS"
	CodeInfluencerNotFound        = "INFLUENCER_NOT_FOUND"
	CodeInfluencerCreateError     = "INFLUENCER_CREATE_ERROR"
	CodeInfluencerValidationError = "INFLUENCER_VALIDATION_ERROR"
	CodeInfluencerFetchError      = "INFLUENCER_FETCH_ERROR"
	CodeInfluencerRoleMismatch    = "INFLUENCER_ROLE_MISMATCH"
	CodeAgeTooYoung               = "AGE_TOO_YOUNG"

	CodeCampaignNotFound        = "CAMPAIGN_NOT_FOUND"
	CodeCampaignCreateError     = "CAMPAIGN_CREATE_ERROR"
	CodeCampaignUpdateError     = "CAMPAIGN_UPDATE_ERROR"
	CodeCampaignValidationError = "CAMPAIGN_VALIDATION_ERROR"
	CodeCampaignFetchError      = "CAMPAIGN_FETCH_ERROR"
	CodeCampaignUnauthorized    = "CAMPAIGN_UNAUTHORIZED"
	CodeCampaignAlreadyClosed   = "CAMPAIGN_ALREADY_CLOSED"
	CodeCampaignAlreadySelected = "CAMPAIGN_ALREADY_SELECTED"
	CodeInvalidRecruitmentDates = "INVALID_RECRUITMENT_DATES"
	CodeNotAdvertiser           = "NOT_ADVERTISER"

	CodeApplicationNotFound        = "APPLICATION_NOT_FOUND"
	CodeApplicationCreateError     = "APPLICATION_CREATE_ERROR"
	CodeApplicationUpdateError     = "APPLICATION_UPDATE_ERROR"
	CodeApplicationValidationError = "APPLICATION_VALIDATION_ERROR"
	CodeApplicationFetchError      = "APPLICATION_FETCH_ERROR"
	CodeApplicationUnauthorized    = "APPLICATION_UNAUTHORIZED"
	CodeDuplicateApplication       = "DUPLICATE_APPLICATION"
	CodeCampaignClosed             = "CAMPAIGN_CLOSED"
	CodeNotInfluencer              = "NOT_INFLUENCER"
	CodeInvalidVisitDate           = "INVALID_VISIT_DATE"
)
