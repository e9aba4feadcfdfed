// Copyright The OpenTelemetry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//       http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package batch

// ToJSONValue implements the projection algorithm of spec.md §4.5: one
// object per batch row carrying @schema_url, @start_time_unix_nano,
// @end_time_unix_nano, one entry per valid column slot, and — for every
// auxiliary entity — a sub-array of child rows grouped under the entity's
// parent column. An empty batch projects to an empty (non-nil) slice.
//
// Each auxiliary entity is walked with a single monotonically increasing
// cursor across the whole row loop, relying on ParentRanks being
// non-decreasing, so the projection is O(batch size + total child rows)
// rather than O(batch size * child rows).
func ToJSONValue(b *Batch, schemaURL string) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, b.Size)
	cursors := make([]int, len(b.AuxiliaryEntities))

	for r := 0; r < b.Size; r++ {
		obj := map[string]interface{}{
			"@schema_url":           schemaURL,
			"@start_time_unix_nano": b.StartTimeUnixNano[r],
			"@end_time_unix_nano":   b.EndTimeUnixNano[r],
		}
		addScalarFields(obj, b, r)

		for ai, aux := range b.AuxiliaryEntities {
			j := cursors[ai]
			var children []map[string]interface{}
			for j < len(aux.ParentRanks) && int(aux.ParentRanks[j]) == r {
				children = append(children, auxChildRow(aux, j))
				j++
			}
			cursors[ai] = j
			if len(children) > 0 {
				obj[aux.ParentColumn] = children
			}
		}

		rows = append(rows, obj)
	}

	return rows
}

func addScalarFields(obj map[string]interface{}, b *Batch, r int) {
	for _, c := range b.I64Columns {
		if c.IsValid(r) {
			obj[c.Name] = c.Values[r]
		}
	}
	for _, c := range b.F64Columns {
		if c.IsValid(r) {
			obj[c.Name] = c.Values[r]
		}
	}
	for _, c := range b.StringColumns {
		if c.IsValid(r) {
			obj[c.Name] = c.Values[r]
		}
	}
	for _, c := range b.BoolColumns {
		if c.IsValid(r) {
			obj[c.Name] = c.Values[r]
		}
	}
	for _, c := range b.BytesColumns {
		if c.IsValid(r) {
			obj[c.Name] = c.Values[r]
		}
	}
	for _, c := range b.I64SummaryColumns {
		if c.Validity.IsSet(r) {
			obj[c.Name] = map[string]interface{}{"count": c.Count[r], "sum": c.Sum[r], "quantiles": c.Quantiles[r]}
		}
	}
	for _, c := range b.F64SummaryColumns {
		if c.Validity.IsSet(r) {
			obj[c.Name] = map[string]interface{}{"count": c.Count[r], "sum": c.Sum[r], "quantiles": c.Quantiles[r]}
		}
	}
}

func auxChildRow(aux *AuxiliaryEntity, j int) map[string]interface{} {
	obj := make(map[string]interface{})
	for _, c := range aux.I64Columns {
		if c.IsValid(j) {
			obj[c.Name] = c.Values[j]
		}
	}
	for _, c := range aux.F64Columns {
		if c.IsValid(j) {
			obj[c.Name] = c.Values[j]
		}
	}
	for _, c := range aux.StringColumns {
		if c.IsValid(j) {
			obj[c.Name] = c.Values[j]
		}
	}
	for _, c := range aux.BoolColumns {
		if c.IsValid(j) {
			obj[c.Name] = c.Values[j]
		}
	}
	for _, c := range aux.BytesColumns {
		if c.IsValid(j) {
			obj[c.Name] = c.Values[j]
		}
	}
	return obj
}
