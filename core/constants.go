package core

// Initial size hint for the hash keydir
const DefaultKeyDirCapacity = 1024
