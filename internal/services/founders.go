package services

import (
  "encoding/json"
  "strconv"
  "strings"

  "gorm.io/datatypes"
)

// Title vocabulary that marks an ingested employee as a founder/key employee.
var foundingTitles = []string{
  "founder",
  "co-founder",
  "ceo",
  "coo",
  "cto",
  "chief executive officer",
  "chief operations officer",
  "chief technology officer",
}

// rawEmployee is the loosely-typed shape of one entry in the ingested
// company_metric.employees array. Person holds a urn-like reference of the
// form "<prefix>:<opaque-id>".
type rawEmployee struct {
  Person   string `json:"person"`
  Title    string `json:"title"`
  RoleType string `json:"role_type"`
}

func decodeEmployees(raw datatypes.JSON) []rawEmployee {
  if len(raw) == 0 {
    return nil
  }
  var employees []rawEmployee
  if err := json.Unmarshal(raw, &employees); err != nil {
    return nil
  }
  return employees
}

func isKeyEmployee(employee rawEmployee) bool {
  if employee.RoleType == "FOUNDER" {
    return true
  }
  title := strings.ToLower(employee.Title)
  if title == "" {
    return false
  }
  for _, keyTitle := range foundingTitles {
    if strings.Contains(title, keyTitle) {
      return true
    }
  }
  return false
}

// parseEntityURNID extracts the integer suffix after the last colon of a
// urn-like reference ("urn:harmonic:person:123" -> 123).
func parseEntityURNID(urn string) (int64, bool) {
  idx := strings.LastIndex(urn, ":")
  if idx < 0 || idx == len(urn)-1 {
    return 0, false
  }
  id, err := strconv.ParseInt(urn[idx+1:], 10, 64)
  if err != nil {
    return 0, false
  }
  return id, true
}

// extractKeyEmployees builds the founder/key-employee subset for one company:
// founders by role or title vocabulary, resolved to full names via the
// enrichment results, deduplicated by resolved name. Entries whose resolved
// name is empty or the "-" placeholder are dropped, as are employees with no
// matching enrichment record.
func extractKeyEmployees(employees []rawEmployee, enriched []*HarmonicPerson) []KeyEmployee {
  seen := make(map[string]struct{})
  keyEmployees := []KeyEmployee{}
  for _, employee := range employees {
    if !isKeyEmployee(employee) {
      continue
    }
    var match *HarmonicPerson
    for _, person := range enriched {
      if person != nil && person.EntityUrn == employee.Person {
        match = person
        break
      }
    }
    if match == nil {
      continue
    }
    name := match.FullName
    if name == "" || name == "-" {
      continue
    }
    if _, ok := seen[name]; ok {
      continue
    }
    seen[name] = struct{}{}
    title := employee.Title
    if title == "" {
      title = "-"
    }
    keyEmployees = append(keyEmployees, KeyEmployee{
      Person:    name,
      Title:     title,
      EntityUrn: employee.Person,
    })
  }
  return keyEmployees
}
