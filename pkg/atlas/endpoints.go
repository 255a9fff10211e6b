package atlas

import "context"

// Endpoint names accepted by the Atlas API.
const (
	EndpointAges                  = "ages"
	EndpointBrands                = "brands"
	EndpointChannels              = "channels"
	EndpointCountries             = "countries"
	EndpointDemographics          = "demographics"
	EndpointEducation             = "education"
	EndpointEmotions              = "emotions"
	EndpointEntities              = "entities"
	EndpointEvents                = "events"
	EndpointGender                = "gender"
	EndpointHashtags              = "hashtags"
	EndpointHeadlines             = "headlines"
	EndpointHomeOwnership         = "home-ownership"
	EndpointHouseholdValue        = "household-value"
	EndpointIncome                = "income"
	EndpointInfluenceDistribution = "influence-distribution"
	EndpointInfluencers           = "influencers"
	EndpointInterests             = "interests"
	EndpointLanguages             = "languages"
	EndpointLinguisticsStats      = "linguistics-stats"
	EndpointNegativeKeywords      = "negative-keywords"
	EndpointNegativeTopics        = "negative-topics"
	EndpointPositiveKeywords      = "positive-keywords"
	EndpointPositiveTopics        = "positive-topics"
	EndpointPostInterests         = "post-interests"
	EndpointPosts                 = "posts"
	EndpointQueryTest             = "query-test"
	EndpointSentiment             = "sentiment"
	EndpointStates                = "states"
	EndpointStories               = "stories"
	EndpointThemes                = "themes"
	EndpointTimeOfDay             = "timeofday"
	EndpointTopicClusters         = "topic-clusters"
	EndpointTopics                = "topics"
	EndpointVolume                = "volume"
)

// Endpoints lists every endpoint with a convenience method, in name order.
var Endpoints = []string{
	EndpointAges,
	EndpointBrands,
	EndpointChannels,
	EndpointCountries,
	EndpointDemographics,
	EndpointEducation,
	EndpointEmotions,
	EndpointEntities,
	EndpointEvents,
	EndpointGender,
	EndpointHashtags,
	EndpointHeadlines,
	EndpointHomeOwnership,
	EndpointHouseholdValue,
	EndpointIncome,
	EndpointInfluenceDistribution,
	EndpointInfluencers,
	EndpointInterests,
	EndpointLanguages,
	EndpointLinguisticsStats,
	EndpointNegativeKeywords,
	EndpointNegativeTopics,
	EndpointPositiveKeywords,
	EndpointPositiveTopics,
	EndpointPostInterests,
	EndpointPosts,
	EndpointQueryTest,
	EndpointSentiment,
	EndpointStates,
	EndpointStories,
	EndpointThemes,
	EndpointTimeOfDay,
	EndpointTopicClusters,
	EndpointTopics,
	EndpointVolume,
}

var endpointSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Endpoints))
	for _, e := range Endpoints {
		m[e] = struct{}{}
	}
	return m
}()

// IsEndpoint reports whether name is one of Endpoints.
func IsEndpoint(name string) bool {
	_, ok := endpointSet[name]
	return ok
}

// Ages returns the output of the ages endpoint.
func (r *Request) Ages(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointAges)
}

// Brands returns the output of the brands endpoint.
func (r *Request) Brands(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointBrands)
}

// Channels returns the output of the channels endpoint.
func (r *Request) Channels(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointChannels)
}

// Countries returns the output of the countries endpoint.
func (r *Request) Countries(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointCountries)
}

// Demographics returns the output of the demographics endpoint.
func (r *Request) Demographics(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointDemographics)
}

// Education returns the output of the education endpoint.
func (r *Request) Education(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointEducation)
}

// Emotions returns the output of the emotions endpoint.
func (r *Request) Emotions(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointEmotions)
}

// Entities returns the output of the entities endpoint.
func (r *Request) Entities(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointEntities)
}

// Events returns the output of the events endpoint.
func (r *Request) Events(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointEvents)
}

// Gender returns the output of the gender endpoint.
func (r *Request) Gender(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointGender)
}

// Hashtags returns the output of the hashtags endpoint.
func (r *Request) Hashtags(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointHashtags)
}

// Headlines returns the output of the headlines endpoint.
func (r *Request) Headlines(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointHeadlines)
}

// HomeOwnership returns the output of the home-ownership endpoint.
func (r *Request) HomeOwnership(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointHomeOwnership)
}

// HouseholdValue returns the output of the household-value endpoint.
func (r *Request) HouseholdValue(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointHouseholdValue)
}

// Income returns the output of the income endpoint.
func (r *Request) Income(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointIncome)
}

// InfluenceDistribution returns the output of the influence-distribution endpoint.
func (r *Request) InfluenceDistribution(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointInfluenceDistribution)
}

// Influencers returns the output of the influencers endpoint.
func (r *Request) Influencers(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointInfluencers)
}

// Interests returns the output of the interests endpoint.
func (r *Request) Interests(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointInterests)
}

// Languages returns the output of the languages endpoint.
func (r *Request) Languages(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointLanguages)
}

// LinguisticsStats returns the output of the linguistics-stats endpoint.
func (r *Request) LinguisticsStats(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointLinguisticsStats)
}

// NegativeKeywords returns the output of the negative-keywords endpoint.
func (r *Request) NegativeKeywords(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointNegativeKeywords)
}

// NegativeTopics returns the output of the negative-topics endpoint.
func (r *Request) NegativeTopics(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointNegativeTopics)
}

// PositiveKeywords returns the output of the positive-keywords endpoint.
func (r *Request) PositiveKeywords(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointPositiveKeywords)
}

// PositiveTopics returns the output of the positive-topics endpoint.
func (r *Request) PositiveTopics(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointPositiveTopics)
}

// PostInterests returns the output of the post-interests endpoint.
func (r *Request) PostInterests(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointPostInterests)
}

// Posts returns the output of the posts endpoint.
func (r *Request) Posts(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointPosts)
}

// QueryTest returns the output of the query-test endpoint.
func (r *Request) QueryTest(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointQueryTest)
}

// Sentiment returns the output of the sentiment endpoint.
func (r *Request) Sentiment(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointSentiment)
}

// States returns the output of the states endpoint.
func (r *Request) States(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointStates)
}

// Stories returns the output of the stories endpoint.
func (r *Request) Stories(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointStories)
}

// Themes returns the output of the themes endpoint.
func (r *Request) Themes(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointThemes)
}

// TimeOfDay returns the output of the timeofday endpoint.
func (r *Request) TimeOfDay(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointTimeOfDay)
}

// TopicClusters returns the output of the topic-clusters endpoint.
func (r *Request) TopicClusters(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointTopicClusters)
}

// Topics returns the output of the topics endpoint.
func (r *Request) Topics(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointTopics)
}

// Volume returns the output of the volume endpoint.
func (r *Request) Volume(ctx context.Context) (any, error) {
	return r.Output(ctx, EndpointVolume)
}
