package catalog

import "github.com/MKhiriev/study-marks/models"

var defaultSubjects = []models.Subject{
	{ID: "physics", Name: "Physics", Level: "Class 11", Chapters: 15},
	{ID: "chemistry", Name: "Chemistry", Level: "Class 11", Chapters: 14},
	{ID: "mathematics", Name: "Mathematics", Level: "Class 11", Chapters: 16},
	{ID: "biology", Name: "Biology", Level: "Class 11", Chapters: 22},
	{ID: "computer-science", Name: "Computer Science", Level: "Class 12", Chapters: 13},
}

var defaultItems = []models.CatalogItem{
	{
		ContentType: models.Note,
		ContentID:   "phys-note-1",
		Subject:     "Physics",
		Title:       "Physical Quantities",
		Description: "Fundamental and derived quantities, SI units and dimensions",
		URL:         "https://study-marks.dev/notes/physics/physical-quantities",
	},
	{
		ContentType: models.Note,
		ContentID:   "phys-note-2",
		Subject:     "Physics",
		Title:       "Motion in a Straight Line",
		Description: "Displacement, velocity, acceleration and the equations of motion",
		URL:         "https://study-marks.dev/notes/physics/motion-in-a-straight-line",
	},
	{
		ContentType: models.Chapter,
		ContentID:   "physics-chapter-3",
		Subject:     "Physics",
		Title:       "Laws of Motion",
		Description: "Newton's laws, friction and circular motion",
		URL:         "https://study-marks.dev/chapters/physics/laws-of-motion",
	},
	{
		ContentType: models.Video,
		ContentID:   "phys-video-projectile",
		Subject:     "Physics",
		Title:       "Projectile Motion Explained",
		Description: "Range, maximum height and time of flight worked through",
		URL:         "https://study-marks.dev/videos/physics/projectile-motion",
	},
	{
		ContentType: models.Note,
		ContentID:   "chem-note-1",
		Subject:     "Chemistry",
		Title:       "Some Basic Concepts of Chemistry",
		Description: "Mole concept, stoichiometry and concentration terms",
		URL:         "https://study-marks.dev/notes/chemistry/basic-concepts",
	},
	{
		ContentType: models.Chapter,
		ContentID:   "chemistry-chapter-4",
		Subject:     "Chemistry",
		Title:       "Chemical Bonding and Molecular Structure",
		Description: "Ionic and covalent bonds, VSEPR theory and hybridisation",
		URL:         "https://study-marks.dev/chapters/chemistry/chemical-bonding",
	},
	{
		ContentType: models.Question,
		ContentID:   "chem-q-periodic-trends",
		Subject:     "Chemistry",
		Title:       "Why does ionisation enthalpy drop down a group?",
		Description: "Periodic trends practice question with a worked answer",
	},
	{
		ContentType: models.Note,
		ContentID:   "math-note-1",
		Subject:     "Mathematics",
		Title:       "Sets and Functions",
		Description: "Set operations, relations and types of functions",
		URL:         "https://study-marks.dev/notes/mathematics/sets-and-functions",
	},
	{
		ContentType: models.Article,
		ContentID:   "math-article-limits",
		Subject:     "Mathematics",
		Title:       "An Intuitive Take on Limits",
		Description: "Limits through sequences and graphs before the epsilon-delta definition",
		URL:         "https://study-marks.dev/articles/mathematics/intuitive-limits",
	},
	{
		ContentType: models.PYQ,
		ContentID:   "pyq-2023-math",
		Subject:     "Mathematics",
		Title:       "Mathematics Board Paper 2023",
		Description: "Past-year question paper with marking scheme",
		URL:         "https://study-marks.dev/pyq/2023/mathematics.pdf",
	},
	{
		ContentType: models.PYQ,
		ContentID:   "pyq-2022-physics",
		Subject:     "Physics",
		Title:       "Physics Board Paper 2022",
		Description: "Past-year question paper with marking scheme",
		URL:         "https://study-marks.dev/pyq/2022/physics.pdf",
	},
	{
		ContentType: models.Note,
		ContentID:   "bio-note-1",
		Subject:     "Biology",
		Title:       "Cell: The Unit of Life",
		Description: "Cell theory, prokaryotic and eukaryotic cells, organelles",
		URL:         "https://study-marks.dev/notes/biology/cell-unit-of-life",
	},
	{
		ContentType: models.Resource,
		ContentID:   "bio-resource-diagrams",
		Subject:     "Biology",
		Title:       "Labelled Diagram Pack",
		Description: "Printable diagrams for revision",
		URL:         "https://study-marks.dev/resources/biology/diagram-pack.zip",
	},
	{
		ContentType: models.Note,
		ContentID:   "cs-note-1",
		Subject:     "Computer Science",
		Title:       "Python Revision Tour",
		Description: "Data types, control flow and functions in Python",
		URL:         "https://study-marks.dev/notes/computer-science/python-revision",
	},
	{
		ContentType: models.Resource,
		ContentID:   "cs-resource-sql-cheatsheet",
		Subject:     "Computer Science",
		Title:       "SQL Cheat Sheet",
		Description: "SELECT, JOIN and aggregate functions on one page",
		URL:         "https://study-marks.dev/resources/computer-science/sql-cheatsheet.pdf",
	},
}
