package resume

// skillsVocabulary returns the fixed vocabulary matched against resume text
func skillsVocabulary() []string {
	return []string{
		// Programming languages
		"Python", "Java", "JavaScript", "C++", "C#", "Ruby", "Go", "Rust", "Swift", "Kotlin",
		"PHP", "TypeScript", "Scala", "R", "MATLAB", "Perl", "Shell", "Bash", "PowerShell",

		// Web development
		"HTML", "CSS", "React", "Angular", "Vue.js", "Node.js", "Express", "Django", "Flask",
		"Ruby on Rails", "Spring Boot", "ASP.NET", "Laravel", "jQuery", "Bootstrap", "Tailwind CSS",

		// Data science and ML
		"Machine Learning", "Deep Learning", "Data Science", "TensorFlow", "PyTorch", "Keras",
		"scikit-learn", "pandas", "NumPy", "Data Analysis", "Data Visualization", "Statistical Analysis",
		"Natural Language Processing", "Computer Vision", "Reinforcement Learning",

		// Databases
		"SQL", "MySQL", "PostgreSQL", "MongoDB", "SQLite", "Oracle", "Microsoft SQL Server",
		"NoSQL", "Redis", "Cassandra", "DynamoDB", "Firebase", "Elasticsearch",

		// Cloud and devops
		"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "CI/CD", "Jenkins", "GitLab CI",
		"GitHub Actions", "Terraform", "Ansible", "Chef", "Puppet", "Prometheus", "Grafana",

		// Other technical skills
		"Git", "RESTful APIs", "GraphQL", "Microservices", "Serverless", "Linux", "Unix",
		"Big Data", "Apache Spark", "Hadoop", "Tableau", "Power BI", "Agile", "Scrum",
		"Jira", "Confluence", "DevOps", "Site Reliability Engineering", "System Design",

		// Soft skills
		"Project Management", "Team Leadership", "Communication", "Problem-solving", "Agile Methodology",
		"Critical Thinking", "Time Management", "Teamwork", "Collaboration", "Adaptability",
	}
}
