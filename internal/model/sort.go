package model

import "sort"

// SortBySize sorts folders by size descending. Equal sizes keep their input order.
func SortBySize(folders []FolderInfo) {
	sort.SliceStable(folders, func(i, j int) bool {
		return folders[i].Size > folders[j].Size
	})
}

// IsSortedBySize reports whether folders are in descending size order
func IsSortedBySize(folders []FolderInfo) bool {
	for i := 1; i < len(folders); i++ {
		if folders[i-1].Size < folders[i].Size {
			return false
		}
	}
	return true
}
