package app

import "time"

// State file
const (
	StateFileMode = 0o600
	StateDirMode  = 0o700
)

// Display limits
const (
	RecentVisitsShown   = 10
	JournalEntriesShown = 10
	NearbyPlacesShown   = 10
)

// OAuthWaitTimeout bounds how long login waits for the browser redirect
const OAuthWaitTimeout = 5 * time.Minute

// User-facing messages
const (
	MsgAuthRequired      = "認証が必要です。`onsen login` でサインインしてください。"
	MsgAuthFailed        = "認証に失敗しました。もう一度サインインしてください。"
	MsgDataAccess        = "サーバーとの通信に失敗しました。時間をおいて再度お試しください。"
	MsgCompanionNotFound = "パートナーがまだいません。`onsen setup` で作成してください。"
	MsgEmptyCatalog      = "アクセサリーが登録されていません。"
	MsgAlreadyOwned      = "そのアクセサリーはすでに持っています。"
	MsgNotOwned          = "そのアクセサリーは持っていません。"
	MsgQuestNotFound     = "クエストが見つかりません。"
	MsgAlreadyCompleted  = "そのクエストはすでに達成済みです。"
	MsgTooFar            = "温泉から離れすぎています。近くまで移動してください。"
	MsgNoActiveSession   = "入浴中ではありません。"
	MsgSessionActive     = "すでに入浴中です。`onsen bathe finish` で終了してください。"
	MsgInvalidTransition = "この画面からは移動できません。"
	MsgInvalidInput      = "入力内容が正しくありません"
	MsgUnknown           = "予期しないエラーが発生しました。"
	MsgNoOnsenNearby     = "近くに温泉が見つかりませんでした。"
)

// Log messages
const (
	LogMsgStateLoadFailed     = "Failed to load client state, starting fresh"
	LogMsgStateSaveFailed     = "Failed to save client state"
	LogMsgEquippedUnavailable = "Equipped accessory unavailable, rendering without it"
	LogMsgCompanionRefresh    = "Failed to refresh companion after visit"
	LogMsgSignedIn            = "Signed in"
	LogMsgSignedOut           = "Signed out"
	LogMsgBathStarted         = "Bathing session started"
	LogMsgBathFinished        = "Bathing session finished"
	LogMsgBathCancelled       = "Bathing session cancelled"
	LogMsgAuthErrorScreen     = "Authentication failed, showing auth error screen"
)
