package skills

// Library is the fixed vocabulary of technical and professional skills,
// grouped by category.
var Library = map[string][]string{
	"Programming Languages": {
		"Python", "Java", "JavaScript", "TypeScript", "C++", "C", "C#",
		"Go", "Rust", "Ruby", "PHP", "Swift", "Kotlin", "Scala",
		"R", "MATLAB", "Perl", "Shell Scripting", "Bash",
	},
	"Machine Learning & AI": {
		"Machine Learning", "Deep Learning", "Natural Language Processing",
		"Computer Vision", "TensorFlow", "PyTorch", "Keras", "Scikit-learn",
		"Neural Networks", "Reinforcement Learning", "Data Science",
		"Statistical Analysis", "Pandas", "NumPy", "OpenCV",
	},
	"Web Development": {
		"React", "Angular", "Vue.js", "Node.js", "Express.js",
		"Django", "Flask", "FastAPI", "HTML", "CSS", "SASS",
		"Bootstrap", "Tailwind CSS", "jQuery", "REST API",
		"GraphQL", "WebSockets", "Redux", "Next.js",
	},
	"Databases": {
		"SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis",
		"SQLite", "Oracle", "Microsoft SQL Server", "Cassandra",
		"DynamoDB", "Elasticsearch", "Neo4j",
	},
	"Cloud & DevOps": {
		"AWS", "Azure", "Google Cloud Platform", "Docker", "Kubernetes",
		"CI/CD", "Jenkins", "GitLab CI", "GitHub Actions", "Terraform",
		"Ansible", "Linux", "Unix", "Nginx", "Apache",
	},
	"Tools": {
		"Git", "GitHub", "GitLab", "Bitbucket", "JIRA", "Confluence",
		"Postman", "Swagger", "Jupyter Notebook",
	},
	"Mobile Development": {
		"Android", "iOS", "React Native", "Flutter", "Xamarin",
	},
}

// AllSkills returns the flattened vocabulary.
func AllSkills() []string {
	var all []string
	for _, group := range Library {
		all = append(all, group...)
	}
	return all
}
