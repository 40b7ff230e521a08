package queuevalues

// PrimaryRankedQueue is the queue used as the player rank.
const PrimaryRankedQueue = "RANKED_SOLO_5x5"

// FlexRankedQueue is returned by the league entries but never used as the rank.
const FlexRankedQueue = "RANKED_FLEX_SR"
