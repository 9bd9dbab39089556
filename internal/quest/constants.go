package quest

// Log messages
const (
	LogMsgOrphanQuestOnsen   = "quest_onsen row has no quest id, skipping"
	LogMsgQuestLookupFailed  = "Quest lookup failed, skipping"
	LogMsgSubmissionLookup   = "Submission lookup failed, skipping quest"
	LogMsgSubmissionInsert   = "Failed to record quest completion, skipping quest"
	LogMsgQuestCompleted     = "Quest completed"
	LogMsgRewardFailed       = "Quest reward failed, completion kept"
	LogMsgEventPublishFailed = "Failed to publish quest event"
	LogMsgQuestsEvaluated    = "Quests evaluated for place"
)
