package types

var itemKindNames = [...]string{
	ItemMiscellaneous: "miscellaneous",
	ItemWeapon:        "weapon",
	ItemKey:           "key",
	ItemAdvantage:     "advantage",
	ItemQuest:         "quest",
}

func (k ItemKind) String() string {
	if int(k) < len(itemKindNames) {
		return itemKindNames[k]
	}
	return "unknown"
}

var wordNames = [...]string{
	WordUnknown: "unknown",
	WordGo:      "go",
	WordLook:    "look",
	WordUse:     "use",
	WordTake:    "take",
	WordDrop:    "drop",
	WordSay:     "say",
	WordGive:    "give",
	WordHelp:    "help",
	WordQuit:    "quit",
}

func (w Word) String() string {
	if int(w) < len(wordNames) {
		return wordNames[w]
	}
	return "unknown"
}

var effectKindNames = [...]string{
	EffectSay:            "say",
	EffectGiveItem:       "give_item",
	EffectPlaceItem:      "place_item",
	EffectSetDialogue:    "set_dialogue",
	EffectRemoveDialogue: "remove_dialogue",
	EffectMoveNPC:        "move_npc",
	EffectSetMoveable:    "set_moveable",
	EffectSetHostile:     "set_hostile",
	EffectRemoveNPC:      "remove_npc",
	EffectUnlockExit:     "unlock_exit",
	EffectLockExit:       "lock_exit",
	EffectSetExit:        "set_exit",
	EffectClearInventory: "clear_inventory",
	EffectRelocatePlayer: "relocate_player",
	EffectCompletePart:   "complete_part",
	EffectEndGame:        "end_game",
}

func (k EffectKind) String() string {
	if int(k) < len(effectKindNames) {
		return effectKindNames[k]
	}
	return "unknown"
}

var eventKindNames = [...]string{
	EventDeath:         "death",
	EventHostile:       "hostile",
	EventQuestComplete: "quest_complete",
	EventTransition:    "transition",
	EventItemMoved:     "item_moved",
	EventExitChanged:   "exit_changed",
	EventNPCMoved:      "npc_moved",
	EventNPCRemoved:    "npc_removed",
	EventGameEnded:     "game_ended",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}
