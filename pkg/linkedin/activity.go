package linkedin

// ActivityType is the normalized kind of a network activity
type ActivityType string

const (
	ActivityTypePost        ActivityType = "POST"
	ActivityTypeJobChange   ActivityType = "JOB_CHANGE"
	ActivityTypeEducation   ActivityType = "EDUCATION"
	ActivityTypeAnniversary ActivityType = "ANNIVERSARY"
	ActivityTypeBirthday    ActivityType = "BIRTHDAY"
)

var activityTypes = map[string]ActivityType{
	"SHARE.CREATE":     ActivityTypePost,
	"ARTICLE.CREATE":   ActivityTypePost,
	"PROFILE.CHANGE":   ActivityTypeJobChange,
	"JOB_CHANGE":       ActivityTypeJobChange,
	"EDUCATION_CHANGE": ActivityTypeEducation,
	"WORK_ANNIVERSARY": ActivityTypeAnniversary,
}

// MapActivityType converts a provider activity type. Unknown types are posts.
func MapActivityType(providerType string) ActivityType {
	if activityType, ok := activityTypes[providerType]; ok {
		return activityType
	}

	return ActivityTypePost
}
