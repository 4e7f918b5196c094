package seed

type department struct {
	id   int64
	name string
	head string
}

type reportRow struct {
	studentID  int64
	name       string
	course1    string
	grade1     string
	course2    string
	grade2     string
	department string
}

type reportUpdate struct {
	studentID  int64
	name       string
	course     string
	grade      string
	department string
}

type student struct {
	id           int64
	name         string
	departmentID int64
}

type credential struct {
	studentID int64
	email     string
}

var departments = []department{
	{1, "Science", "Dr. Smith"},
	{2, "Arts", "Dr. Johnson"},
	{3, "Engineering", "Dr. Brown"},
	{4, "Computer Science", "Dr. Davis"},
	{5, "Business", "Dr. Wilson"},
	{6, "Information Technology", "Dr. Miller"},
}

var reportRows = []reportRow{
	{175207889, "Akwesi Bonsu", "Mathematics I", "A", "Physics I", "B", "Science"},
	{172056781, "Baena Mensah", "Biology I", "C", "Chemistry I", "B", "Science"},
	{175032146, "Kojo Antwi", "English Literature", "A", "History", "A", "Arts"},
	{172568404, "Abiew Lawrence", "Computer Science", "B", "Data Structures", "B", "Engineering"},
	{173501479, "Efua Asante", "Accounting", "A", "Economics", "A", "Business"},
	{170231458, "Johnson Kissi", "Mechanics", "C", "Calculus", "D", "Engineering"},
	{172135870, "Farouk Mustapha", "Programming I", "B", "Web Development", "B", "Computer Science"},
	{172451478, "Obeng Derrick", "Marketing", "A", "Finance", "A", "Business"},
	{172310264, "Akosua Osei", "Geography", "B", "Government", "A", "Arts"},
	{178521468, "Kofi Amoah", "Digital Electronics", "C", "Circuits", "C", "Engineering"},
	{171235871, "Afia Manu", "French", "B", "Spanish", "C", "Arts"},
	{172534783, "Fred Owusu", "Linear Algebra", "B", "Discrete Math", "B", "Science"},
	{172351478, "Daniel Owusu", "Introduction to AI", "A", "Python Programming", "A", "Computer Science"},
	{177523150, "Kwame Boateng", "Statistics I", "B", "Operations Research", "B", "Science"},
	{1785320147, "Mawusi Tetteh", "Macroeconomics", "A", "Management", "A", "Business"},
	{1751230241, "Ernest Kwame", "Database Systems", "B", "Operating Systems", "C", "Computer Science"},
	{1723014572, "Benjamin Danso", "Anatomy", "C", "Physiology", "C", "Science"},
	{1781236214, "Justice Ofori", "Java Programming", "A", "Software Engineering", "A", "Computer Science"},
	{1785231478, "Stephen Appiah", "World Religions", "A", "Philosophy", "B", "Arts"},
	{1785213512, "George Krampah", "Network Fundamentals", "B", "Cybersecurity Basics", "B", "Computer Science"},
}

var reportUpdates = []reportUpdate{
	{173024258, "Emmanuel Samu", "DBMS", "B+", "Information Technology"},
	{175025256, "Nadia Ofori", "DBMS", "A-", "Computer Science"},
	{175024658, "James Tah", "DBMS", "B", "Information Technology"},
	{175827698, "Nana Owusu", "Cloud Computing", "A", "Computer Science"},
	{165084765, "Eric Gyamfi", "Cloud Computing", "A-", "Computer Science"},
}

var students = []student{
	{175207889, "Akwesi Bonsu", 1},
	{172056781, "Baena Mensah", 1},
	{175032146, "Kojo Antwi", 2},
	{172568404, "Abiew Lawrence", 3},
	{173501479, "Efua Asante", 5},
	{170231458, "Johnson Kissi", 3},
	{172135870, "Farouk Mustapha", 4},
	{172451478, "Obeng Derrick", 5},
	{172310264, "Akosua Osei", 2},
	{178521468, "Kofi Amoah", 3},
	{171235871, "Afia Manu", 2},
	{172534783, "Fred Owusu", 1},
	{172351478, "Daniel Owusu", 4},
	{177523150, "Kwame Boateng", 1},
	{1785320147, "Mawusi Tetteh", 5},
	{1751230241, "Ernest Kwame", 4},
	{1723014572, "Benjamin Danso", 1},
	{1781236214, "Justice Ofori", 4},
	{1785231478, "Stephen Appiah", 2},
	{1785213512, "George Krampah", 4},
	{173024258, "Emmanuel Samu", 6},
	{175025256, "Nadia Ofori", 4},
	{175024658, "James Tah", 6},
	{175827698, "Nana Owusu", 4},
	{165084765, "Eric Gyamfi", 4},
}

var credentials = []credential{
	{175207889, "akwesi.bonsu@student.edu"},
	{172056781, "baena.mensah@student.edu"},
	{175032146, "kojo.antwi@student.edu"},
	{172568404, "abiew.lawrence@student.edu"},
	{173501479, "efua.asante@student.edu"},
	{170231458, "johnson.kissi@student.edu"},
	{172135870, "farouk.mustapha@student.edu"},
	{172451478, "obeng.derrick@student.edu"},
	{172310264, "akosua.osei@student.edu"},
	{178521468, "kofi.amoah@student.edu"},
	{173024258, "emmanuel.samu@student.edu"},
	{175025256, "nadia.ofori@student.edu"},
	{175024658, "james.tah@student.edu"},
	{175827698, "nana.owusu@student.edu"},
	{165084765, "eric.gyamfi@student.edu"},
}
