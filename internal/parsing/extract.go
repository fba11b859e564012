// Package parsing converts plain resume text (as extracted from a PDF) into structured resume data
// using line-oriented heuristics.
package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// section identifies which resume section the scanner is currently inside
type section string

const (
	sectionNone           section = ""
	sectionExperience     section = "experience"
	sectionEducation      section = "education"
	sectionSkills         section = "skills"
	sectionProjects       section = "projects"
	sectionCertifications section = "certifications"
)

// sectionHeaders maps the upper-cased header line to its section
var sectionHeaders = map[string]section{
	"EXPERIENCE":     sectionExperience,
	"EDUCATION":      sectionEducation,
	"SKILLS":         sectionSkills,
	"PROJECTS":       sectionProjects,
	"CERTIFICATIONS": sectionCertifications,
}

var (
	skillDomainPattern = regexp.MustCompile(`^([^:]+):\s*(.+)$`)
	phonePattern       = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
)

// skillDomains keeps per-domain skill buckets in first-seen order
type skillDomains struct {
	order   []string
	buckets map[string][]string
}

func newSkillDomains() *skillDomains {
	return &skillDomains{buckets: make(map[string][]string)}
}

// set replaces a domain's bucket, keeping its original position if it already exists
func (d *skillDomains) set(domain string, skills []string) {
	if _, ok := d.buckets[domain]; !ok {
		d.order = append(d.order, domain)
	}
	d.buckets[domain] = skills
}

func (d *skillDomains) add(domain string, skills []string) {
	if _, ok := d.buckets[domain]; !ok {
		d.order = append(d.order, domain)
	}
	d.buckets[domain] = append(d.buckets[domain], skills...)
}

// flatten drops empty buckets and concatenates the rest in domain order
func (d *skillDomains) flatten() []string {
	out := []string{}
	for _, domain := range d.order {
		skills := d.buckets[domain]
		if len(skills) == 0 {
			continue
		}
		out = append(out, skills...)
	}
	return out
}

// ExtractResumeData builds a partial resume from raw resume text.
//
// Headers are recognized only when a whole line upper-cases to one of EXPERIENCE, EDUCATION,
// SKILLS, PROJECTS or CERTIFICATIONS. Inside SKILLS, "Domain: a, b" lines open a domain and
// following lines add more comma-separated skills to it; the domains are flattened into one
// list. Lines outside any section are probed for contact details, first match wins.
// Experience, education, project and certification lines are not extracted.
func ExtractResumeData(text string) *types.ExtractedResume {
	info := types.PersonalInfo{}
	domains := newSkillDomains()

	current := sectionNone
	currentDomain := ""
	haveDomain := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if sec, ok := sectionHeaders[strings.ToUpper(line)]; ok {
			current = sec
			currentDomain, haveDomain = "", false
			continue
		}

		switch current {
		case sectionExperience, sectionEducation, sectionProjects, sectionCertifications:
			// TODO: extract items for these sections; today the lines are dropped.
		case sectionSkills:
			if m := skillDomainPattern.FindStringSubmatch(line); m != nil {
				domain := strings.TrimSpace(m[1])
				domains.set(domain, splitSkills(m[2]))
				currentDomain, haveDomain = domain, true
			} else if haveDomain {
				domains.add(currentDomain, splitSkills(line))
			}
		default:
			detectContact(&info, line)
		}
	}

	return &types.ExtractedResume{
		PersonalInfo:   info,
		Experience:     []types.ExperienceItem{},
		Education:      []types.EducationItem{},
		Skills:         domains.flatten(),
		Projects:       []types.ProjectItem{},
		Certifications: []types.CertificationItem{},
	}
}

// detectContact fills the first empty contact field the line looks like.
// The checks form a single chain: a line that matches an already-filled field falls through
// to the next probe.
func detectContact(info *types.PersonalInfo, line string) {
	switch {
	case strings.Contains(line, "@") && info.Email == "":
		info.Email = line
	case phonePattern.MatchString(line) && info.Phone == "":
		info.Phone = line
	case strings.Contains(line, "linkedin.com") && info.LinkedIn == "":
		info.LinkedIn = line
	case strings.Contains(line, "http") && info.Website == "":
		info.Website = line
	}
}

// splitSkills splits a comma-separated list, trimming entries and dropping empty ones
func splitSkills(list string) []string {
	parts := strings.Split(list, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}
