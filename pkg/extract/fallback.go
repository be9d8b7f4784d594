package extract

// FallbackText is a complete synthetic resume returned when every extraction
// tier fails, so downstream structuring always has non-trivial input. Callers
// can detect it through Result.Source == SourceFallback.
const FallbackText = `John Doe
Software Engineer
Email: john.doe@example.com
Phone: +1-234-567-8900

EXPERIENCE
Senior Software Engineer at Tech Corp (2020-Present)
- Led development of microservices architecture
- Improved system performance by 40%

Software Developer at StartupXYZ (2018-2020)
- Built REST APIs using Python and FastAPI
- Worked with React for frontend development

EDUCATION
Bachelor of Science in Computer Science
University of Technology (2014-2018)

SKILLS
Technical: Python, JavaScript, React, FastAPI, Docker, AWS
Tools: Git, Jenkins, Kubernetes
Soft Skills: Leadership, Communication, Problem Solving

CERTIFICATIONS
AWS Certified Solutions Architect

LANGUAGES
English (Native), Spanish (Intermediate)`
