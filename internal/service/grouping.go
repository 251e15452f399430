package service

import (
	"sort"
	"strings"

	"assetboard/internal/models"
)

// groupRecords partitions an ordered record sequence into top-level group
// buckets. Records keep their relative order inside each bucket; buckets are
// ordered alphabetically by group name, case-insensitive, with the
// unassigned bucket always last.
func groupRecords(records []models.AssetPivotRecord) []models.GroupBucket {
	index := make(map[string]int)
	var groups []models.GroupBucket

	for _, record := range records {
		name := record.TopGroup
		if name == "" {
			name = models.UnassignedGroup
		}
		pos, ok := index[name]
		if !ok {
			pos = len(groups)
			index[name] = pos
			groups = append(groups, models.GroupBucket{GroupName: name})
		}
		groups[pos].Items = append(groups[pos].Items, record)
	}

	for i := range groups {
		groups[i].TotalInGroup = len(groups[i].Items)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].GroupName, groups[j].GroupName
		if a == models.UnassignedGroup {
			return false
		}
		if b == models.UnassignedGroup {
			return true
		}
		return strings.ToLower(a) < strings.ToLower(b)
	})

	return groups
}

// windowGroups slices a page window out of the flattened group sequence and
// rebuilds the group boundaries for just that window. TotalInGroup stays the
// full cross-page count of the source bucket, so a group split across pages
// still reports its real size.
func windowGroups(groups []models.GroupBucket, offset, limit int) []models.GroupBucket {
	if limit <= 0 {
		return nil
	}

	var window []models.GroupBucket
	skip := offset
	remaining := limit

	for _, group := range groups {
		if remaining == 0 {
			break
		}
		if skip >= len(group.Items) {
			skip -= len(group.Items)
			continue
		}
		items := group.Items[skip:]
		skip = 0
		if len(items) > remaining {
			items = items[:remaining]
		}
		remaining -= len(items)
		window = append(window, models.GroupBucket{
			GroupName:    group.GroupName,
			Items:        items,
			TotalInGroup: group.TotalInGroup,
		})
	}

	return window
}

// pageIdentities lists the asset identities contained in a group window, in
// window order.
func pageIdentities(groups []models.GroupBucket) []models.AssetIdentity {
	var identities []models.AssetIdentity
	for _, group := range groups {
		for _, record := range group.Items {
			identities = append(identities, record.AssetIdentity)
		}
	}
	return identities
}
