package resume

import "github.com/jonathan/resume-builder/internal/types"

// Sample returns a filled-in example resume for previews and demos
func Sample() types.ResumeData {
	return types.ResumeData{
		PersonalInfo: types.PersonalInfo{
			FirstName: "John",
			LastName:  "Doe",
			Email:     "johndoe@example.com",
			Phone:     "(555) 123-4567",
			LinkedIn:  "linkedin.com/in/johndoe",
			Website:   "johndoe.com",
			Location:  "San Francisco, CA",
		},
		Summary: "Results-driven software engineer with 5+ years of experience in full-stack development. " +
			"Skilled in React, Node.js, and cloud architecture. Passionate about creating scalable solutions and optimizing performance.",
		Experience: []types.ExperienceItem{
			{
				ID:          "exp1",
				Company:     "Tech Solutions Inc.",
				Position:    "Senior Software Engineer",
				Location:    "San Francisco, CA",
				StartDate:   "2020-06",
				Current:     true,
				Description: "Lead developer for enterprise SaaS application",
				Bullets: []string{
					"Architected and implemented scalable microservices using Node.js and Kubernetes",
					"Reduced API response time by 40% through performance optimizations",
					"Mentored junior developers and led code reviews for team of 8 engineers",
					"Implemented CI/CD pipeline reducing deployment time by 60%",
				},
			},
			{
				ID:          "exp2",
				Company:     "WebDev Startup",
				Position:    "Frontend Developer",
				Location:    "Oakland, CA",
				StartDate:   "2018-03",
				EndDate:     "2020-05",
				Description: "Developed responsive web applications",
				Bullets: []string{
					"Built interactive user interfaces using React and Redux",
					"Implemented responsive designs using SASS and CSS Grid",
					"Integrated third-party APIs and services",
					"Collaborated with design team to implement UI/UX improvements",
				},
			},
		},
		Education: []types.EducationItem{
			{
				ID:           "edu1",
				Institution:  "University of California, Berkeley",
				Degree:       "Bachelor of Science",
				FieldOfStudy: "Computer Science",
				Location:     "Berkeley, CA",
				StartDate:    "2014-09",
				EndDate:      "2018-05",
				GPA:          "3.8",
			},
		},
		Skills: []string{
			"JavaScript", "TypeScript", "React", "Node.js", "Express", "MongoDB",
			"PostgreSQL", "AWS", "Docker", "Kubernetes", "CI/CD", "Git",
		},
		Projects: []types.ProjectItem{
			{
				ID:           "proj1",
				Title:        "E-commerce Platform",
				Description:  "Built a full-stack e-commerce platform with React, Node.js, and MongoDB",
				Technologies: []string{"React", "Node.js", "Express", "MongoDB", "Stripe API"},
				Link:         "github.com/johndoe/ecommerce",
			},
			{
				ID:           "proj2",
				Title:        "Real-time Chat Application",
				Description:  "Developed a real-time chat application with Socket.io and React",
				Technologies: []string{"React", "Socket.io", "Express", "Redis"},
				Link:         "github.com/johndoe/chat-app",
			},
		},
		Certifications: []types.CertificationItem{
			{
				ID:      "cert1",
				Name:    "AWS Certified Solutions Architect",
				Issuer:  "Amazon Web Services",
				Date:    "2021-05",
				Expires: "2024-05",
				Link:    "verify.aws/12345",
			},
		},
		TargetRole:      "Full Stack Developer",
		ExperienceLevel: types.LevelMid,
	}
}
