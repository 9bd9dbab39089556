package postgres

// Operation labels for backend metrics
const (
	opGetAllAccessories    = "get_all_accessories"
	opGetAccessoryByID     = "get_accessory_by_id"
	opGetUserAccessories   = "get_user_accessories"
	opGetUserAccessory     = "get_user_accessory"
	opInsertUserAccessory  = "insert_user_accessory"
	opGetEquippedAccessory = "get_equipped_accessory"
	opBeginTx              = "begin_tx"
	opUnequipAll           = "unequip_all"
	opSetEquipped          = "set_equipped"
	opCommit               = "commit"

	opGetQuests          = "get_quests"
	opGetQuestByID       = "get_quest_by_id"
	opGetQuestOnsensByID = "get_quest_onsens"
	opGetOnsensByPlace   = "get_quest_onsens_by_place"
	opCountQuestOnsens   = "count_quest_onsens"
	opGetSubmission      = "get_submission"
	opGetUserSubmissions = "get_user_submissions"
	opInsertSubmission   = "insert_submission"
	opUpsertSubmission   = "upsert_submission"

	opInsertVisitLog   = "insert_visit_log"
	opGetUserVisitLogs = "get_user_visit_logs"

	opGetCompanion    = "get_companion"
	opCreateCompanion = "create_companion"
	opUpdateCompanion = "update_companion"

	opGetProfile        = "get_profile"
	opUpsertProfileName = "upsert_profile_name"

	opUpsertAccessory  = "upsert_accessory"
	opUpsertQuest      = "upsert_quest"
	opUpsertQuestOnsen = "upsert_quest_onsen"
	opUpsertPartner    = "upsert_partner"
)
