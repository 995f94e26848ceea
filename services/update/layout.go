package update

// Flash top layout. The last erase block of on-board flash persists WiFi
// credentials; the block below it carries the boot trailer the stage-2
// bootloader checks. The staged image grows from the flash midpoint and
// must stop short of the trailer block, so neither a credential rewrite
// nor a full-size image can touch the trailer.

// trailerOffset is the byte offset of the boot trailer's erase block.
func trailerOffset(flashSize, eraseBlock int64) int64 {
	return flashSize - 2*eraseBlock
}

// stageLimit is the largest image the stage area can hold.
func stageLimit(flashSize, eraseBlock int64) int64 {
	return flashSize/2 - 2*eraseBlock
}
